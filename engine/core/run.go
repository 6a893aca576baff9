package core

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/logging"
	"github.com/hubastard/hazel/engine/profiler"
)

// Run attaches the layers and drives the main loop until Close is called or
// the window asks to close. Layers are detached and the device and window
// destroyed before Run returns.
//
// Attach failures do not stop the loop; they are returned joined with any
// fatal frame error once the loop has exited. Run panics when called twice.
func (a *Application) Run() error {
	if a.state != StateCreated {
		panic(fmt.Sprintf("core: Run called in state %s", a.state))
	}
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	attachErr := a.layers.OnAttach(a)
	a.state = StateRunning
	a.lastFrame = a.now()
	if a.visible {
		a.window.SetVisible(true)
	}
	a.window.RequestRedraw()
	logging.Logger().Info("application running", "layers", a.layers.Len())

	var fatal error
	for a.state == StateRunning && fatal == nil {
		for _, raw := range a.window.PollEvents() {
			if fatal = a.handleRawEvent(raw); fatal != nil {
				break
			}
		}
		if a.state == StateRunning {
			a.window.RequestRedraw()
		}
	}

	a.shutdown()
	return errors.Join(attachErr, fatal)
}

func (a *Application) shutdown() {
	a.layers.OnDetach(a)
	a.surface.Device().Destroy()
	a.window.Destroy()
	a.state = StateStopped
	logging.Logger().Info("application stopped", "frames", a.frames)
}

// handleRawEvent hands raw to the layers, then either acts on it directly
// (close, redraw) or translates it into a domain event.
func (a *Application) handleRawEvent(raw RawEvent) error {
	a.layers.OnRawEvent(a, raw)

	switch raw.(type) {
	case RawCloseRequested:
		a.Close()
		return nil
	case RawRedrawRequested:
		return a.tick()
	}

	if ev, ok := Translate(a.input, a.surface, raw); ok {
		a.layers.OnEvent(a, ev)
	}
	return nil
}

// tick runs one update/render cycle. A dropped frame skips the render stage;
// only a lost device is fatal.
func (a *Application) tick() error {
	defer a.input.ClearReleased()

	now := a.now()
	a.delta = now.Sub(a.lastFrame)
	a.lastFrame = now

	end := profiler.Start("update")
	a.layers.OnUpdate(a, a.delta)
	end()

	end = profiler.Start("before-render")
	a.layers.OnBeforeRender(a)
	end()

	frame, err := a.surface.BeginFrame()
	if err != nil {
		if errors.Is(err, gfx.ErrDeviceLost) {
			return fmt.Errorf("core: begin frame: %w", err)
		}
		logging.Logger().Warn("dropped frame", "err", err)
		return nil
	}

	end = profiler.Start("render")
	a.layers.OnRender(a, frame)
	err = a.surface.EndFrame(frame)
	end()
	if err != nil {
		if errors.Is(err, gfx.ErrDeviceLost) {
			return fmt.Errorf("core: end frame: %w", err)
		}
		logging.Logger().Warn("frame not presented", "err", err)
		return nil
	}
	a.frames++
	return nil
}
