package scene

import (
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/hubastard/hazel/engine/core"
)

// OrthoController2D: WASD move, Q/E rotate, Z/X zoom in/out.
type OrthoController2D struct {
	MoveSpeed float32 // units per second
	RotSpeed  float32 // radians per second
	ZoomSpeed float32 // zoom factor per second
	Camera    *OrthoCamera2D
}

func NewOrthoController2D(cam *OrthoCamera2D) *OrthoController2D {
	return &OrthoController2D{
		MoveSpeed: 1,
		RotSpeed:  2.0,
		ZoomSpeed: 1.2,
		Camera:    cam,
	}
}

func (cc *OrthoController2D) Update(in *core.InputContext, dt time.Duration) {
	secs := float32(dt.Seconds())
	speed := cc.MoveSpeed * secs / cc.Camera.Zoom
	rot := cc.RotSpeed * secs

	if in.IsKeyPressed(core.KeyW) {
		cc.Camera.Move(0, speed)
	}
	if in.IsKeyPressed(core.KeyS) {
		cc.Camera.Move(0, -speed)
	}
	if in.IsKeyPressed(core.KeyA) {
		cc.Camera.Move(-speed, 0)
	}
	if in.IsKeyPressed(core.KeyD) {
		cc.Camera.Move(speed, 0)
	}
	if in.IsKeyPressed(gpucontext.KeyQ) {
		cc.Camera.Rotate(rot)
	}
	if in.IsKeyPressed(gpucontext.KeyE) {
		cc.Camera.Rotate(-rot)
	}
	if in.IsKeyPressed(gpucontext.KeyZ) {
		cc.Camera.SetZoom(cc.Camera.Zoom * (1 + (cc.ZoomSpeed-1)*secs*10))
	}
	if in.IsKeyPressed(gpucontext.KeyX) {
		cc.Camera.SetZoom(cc.Camera.Zoom / (1 + (cc.ZoomSpeed-1)*secs*10))
	}
}

// OnEvent keeps the camera's aspect ratio in step with the window.
func (cc *OrthoController2D) OnEvent(ev core.Event) {
	if r, ok := ev.(core.EventWindowResize); ok && r.Width > 0 && r.Height > 0 {
		cc.Camera.SetAspect(r.Width, r.Height)
	}
}
