// Package glbackend implements gfx.Device on OpenGL 3.3 core.
//
// Every call must happen on the goroutine that owns the GL context.
package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/logging"
)

// Context is the part of the platform window the device drives.
type Context interface {
	MakeContextCurrent()
	SwapBuffers()
	SwapInterval(interval int)
	FramebufferSize() (width, height int)
}

// Device replays recorded frames against the default framebuffer.
type Device struct {
	ctx        Context
	info       gfx.AdapterInfo
	cfg        gfx.SurfaceConfig
	generation uint64
	vao        uint32
	destroyed  bool

	state replayState
}

var _ gfx.Device = (*Device)(nil)

// NewDevice loads the GL entry points for ctx. OpenGL cannot pick an
// adapter, so the power preference is only logged.
func NewDevice(ctx Context, opts gfx.DeviceOptions) (*Device, error) {
	ctx.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl: init: %w", err)
	}
	d := &Device{
		ctx: ctx,
		info: gfx.AdapterInfo{
			Backend:  "OpenGL",
			Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
			Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
			Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		},
	}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	logging.Logger().Info("gpu device",
		"label", opts.Label,
		"backend", d.info.Backend,
		"vendor", d.info.Vendor,
		"renderer", d.info.Renderer,
		"version", d.info.Version,
		"power_preference", opts.PowerPreference)
	if err := checkError("init"); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Device) Info() gfx.AdapterInfo { return d.info }

// Configure sets the swap interval, viewport and framebuffer encoding.
// Fifo waits for vertical sync, every other mode swaps immediately.
func (d *Device) Configure(cfg gfx.SurfaceConfig) error {
	if d.destroyed {
		return gfx.ErrDeviceLost
	}
	d.ctx.SwapInterval(swapInterval(cfg.PresentMode))
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	if cfg.Format.IsSrgb() {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		gl.Disable(gl.FRAMEBUFFER_SRGB)
	}
	if err := checkError("configure"); err != nil {
		return err
	}
	d.cfg = cfg
	d.generation++
	return nil
}

// Acquire hands out the default framebuffer. It reports ErrSurfaceOutdated
// until Configure was called with the framebuffer's current size.
func (d *Device) Acquire() (gfx.Target, error) {
	if d.destroyed {
		return gfx.Target{}, gfx.ErrDeviceLost
	}
	w, h := d.ctx.FramebufferSize()
	if d.generation == 0 || w != d.cfg.Width || h != d.cfg.Height {
		return gfx.Target{}, fmt.Errorf("gl: framebuffer is %dx%d, configured %dx%d: %w",
			w, h, d.cfg.Width, d.cfg.Height, gfx.ErrSurfaceOutdated)
	}
	return gfx.Target{
		Width:       w,
		Height:      h,
		Format:      d.cfg.Format,
		PresentMode: d.cfg.PresentMode,
		Generation:  d.generation,
	}, nil
}

func (d *Device) Present(target gfx.Target) error {
	if err := d.checkTarget(target); err != nil {
		return err
	}
	d.ctx.SwapBuffers()
	return nil
}

func (d *Device) checkTarget(target gfx.Target) error {
	if d.destroyed {
		return gfx.ErrDeviceLost
	}
	if target.Generation != d.generation {
		return fmt.Errorf("gl: target from generation %d, current is %d: %w",
			target.Generation, d.generation, gfx.ErrSurfaceOutdated)
	}
	return nil
}

// Destroy deletes the device's own objects. Resources created from it must
// have been released already.
func (d *Device) Destroy() {
	if d.destroyed {
		return
	}
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &d.vao)
	d.destroyed = true
}

func swapInterval(mode gputypes.PresentMode) int {
	if mode == gputypes.PresentModeFifo {
		return 1
	}
	return 0
}

// checkError drains the GL error queue. Running out of memory leaves the
// context undefined and is reported as a lost device.
func checkError(op string) error {
	var first uint32
	for range 8 {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == 0 {
			first = code
		}
	}
	switch first {
	case 0:
		return nil
	case gl.OUT_OF_MEMORY:
		return fmt.Errorf("gl: %s: out of memory: %w", op, gfx.ErrDeviceLost)
	}
	return fmt.Errorf("gl: %s: error 0x%04x", op, first)
}
