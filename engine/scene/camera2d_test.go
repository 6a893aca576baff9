package scene

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/hubastard/hazel/engine/core"
)

func assertPoint(t *testing.T, m [16]float32, x, y, wantX, wantY float32) {
	t.Helper()
	gx, gy := Apply(m, x, y)
	assert.InDelta(t, wantX, gx, 1e-5, "x of (%v, %v)", x, y)
	assert.InDelta(t, wantY, gy, 1e-5, "y of (%v, %v)", x, y)
}

func TestOrthoMapsViewportCorners(t *testing.T) {
	c := NewOrtho2D(800, 600)
	vp := c.VP()
	assertPoint(t, vp, -400, -300, -1, -1)
	assertPoint(t, vp, 400, 300, 1, 1)
	assertPoint(t, vp, 0, 0, 0, 0)
}

func TestMoveRotateZoom(t *testing.T) {
	c := NewAspectOrtho2D(200, 100)
	c.Move(1, 0)
	assertPoint(t, c.VP(), 1, 0, 0, 0)
	assertPoint(t, c.VP(), 3, 1, 1, 1)

	c.SetZoom(2)
	assertPoint(t, c.VP(), 2, 0.5, 1, 1)

	c.SetZoom(0)
	assert.Equal(t, float32(0.05), c.Zoom)

	c.SetZoom(1)
	c.Move(-1, 0)
	c.Rotate(math32.Pi / 2)
	// a camera turned left sees the world turned right
	assertPoint(t, c.VP(), 0, 1, 0.5, 0)
}

func TestPixelVP(t *testing.T) {
	vp := PixelVP(800, 600)
	assertPoint(t, vp, 0, 0, -1, 1)
	assertPoint(t, vp, 800, 600, 1, -1)
	assertPoint(t, vp, 400, 300, 0, 0)
}

func TestControllerMovesWithHeldKeys(t *testing.T) {
	cam := NewAspectOrtho2D(100, 100)
	cc := NewOrthoController2D(cam)
	in := core.NewInputContext()
	in.Update(core.RawKeyboardInput{Key: core.KeyD, State: core.Pressed})
	in.Update(core.RawKeyboardInput{Key: core.KeyW, State: core.Pressed})

	cc.Update(in, 500*time.Millisecond)
	assert.InDelta(t, 0.5, cam.X, 1e-6)
	assert.InDelta(t, 0.5, cam.Y, 1e-6)

	in.Update(core.RawKeyboardInput{Key: core.KeyD, State: core.Released})
	in.Update(core.RawKeyboardInput{Key: core.KeyW, State: core.Released})
	cc.Update(in, time.Second)
	assert.InDelta(t, 0.5, cam.X, 1e-6)
}

func TestControllerFollowsResize(t *testing.T) {
	cam := NewAspectOrtho2D(100, 100)
	cc := NewOrthoController2D(cam)
	cc.OnEvent(core.EventWindowResize{Width: 200, Height: 100})
	assert.Equal(t, float32(-2), cam.Left)
	assert.Equal(t, float32(2), cam.Right)

	cc.OnEvent(core.EventWindowResize{Width: 0, Height: 0})
	assert.Equal(t, float32(2), cam.Right)
}
