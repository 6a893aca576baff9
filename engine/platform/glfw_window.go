// Package platform provides the GLFW window behind core.Window.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/hazel/engine/core"
	"github.com/hubastard/hazel/engine/logging"
)

// Window is a GLFW window with an OpenGL 3.3 core context. GLFW callbacks
// only queue raw events; PollEvents hands them to the application.
//
// Must be created and used on the main thread.
type Window struct {
	w      *glfw.Window
	queue  []core.RawEvent
	spare  []core.RawEvent
	redraw bool
	mods   core.Modifiers
	scale  float64

	cursors map[core.CursorIcon]*glfw.Cursor
	cursor  core.CursorIcon
}

// NewWindow creates a hidden window sized from cfg and makes its context
// current. The application shows it once its layers are attached.
func NewWindow(cfg core.Config) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("platform: glfw init: %w", err)
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)
	glfw.WindowHint(glfw.SRGBCapable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("platform: create window: %w", err)
	}
	win.MakeContextCurrent()

	sx, _ := win.GetContentScale()
	g := &Window{
		w:       win,
		scale:   float64(sx),
		cursors: make(map[core.CursorIcon]*glfw.Cursor),
	}
	if g.scale <= 0 {
		g.scale = 1
	}
	g.installCallbacks()

	fw, fh := win.GetFramebufferSize()
	logging.Logger().Info("window created", "title", cfg.Title, "width", fw, "height", fh, "scale", g.scale)
	return g, nil
}

func (g *Window) installCallbacks() {
	g.w.SetCloseCallback(func(*glfw.Window) {
		g.w.SetShouldClose(false)
		g.push(core.RawCloseRequested{})
	})
	g.w.SetRefreshCallback(func(*glfw.Window) { g.RequestRedraw() })
	g.w.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		g.push(core.RawResized{Width: w, Height: h})
	})
	g.w.SetContentScaleCallback(func(_ *glfw.Window, x, _ float32) {
		g.scale = float64(x)
		fw, fh := g.w.GetFramebufferSize()
		g.push(core.RawScaleFactorChanged{Factor: g.scale, Width: fw, Height: fh})
	})
	g.w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		rx, ry := g.pixelRatio()
		g.push(core.RawCursorMoved{X: x * rx, Y: y * ry})
	})
	g.w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		g.setMods(mods)
		state := core.Pressed
		if action == glfw.Release {
			state = core.Released
		}
		g.push(core.RawKeyboardInput{Key: translateKey(key), State: state, Repeat: action == glfw.Repeat})
	})
	g.w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		g.setMods(mods)
		state := core.Pressed
		if action == glfw.Release {
			state = core.Released
		}
		g.push(core.RawMouseInput{Button: translateMouseButton(button), State: state})
	})
}

func (g *Window) push(ev core.RawEvent) { g.queue = append(g.queue, ev) }

func (g *Window) setMods(m glfw.ModifierKey) {
	if mods := translateMods(m); mods != g.mods {
		g.mods = mods
		g.push(core.RawModifiersChanged{Mods: mods})
	}
}

// pixelRatio converts cursor coordinates to framebuffer pixels.
func (g *Window) pixelRatio() (float64, float64) {
	ww, wh := g.w.GetSize()
	fw, fh := g.w.GetFramebufferSize()
	if ww == 0 || wh == 0 {
		return 1, 1
	}
	return float64(fw) / float64(ww), float64(fh) / float64(wh)
}

// PollEvents waits for events unless a redraw is pending or events are
// already queued. The returned slice is valid until the next call.
func (g *Window) PollEvents() []core.RawEvent {
	if g.redraw || len(g.queue) > 0 {
		glfw.PollEvents()
	} else {
		glfw.WaitEvents()
	}
	out := g.queue
	g.queue, g.spare = g.spare[:0], out
	if g.redraw {
		g.redraw = false
		out = append(out, core.RawRedrawRequested{})
	}
	return out
}

// core.Window impl
func (g *Window) Size() (int, int)            { return g.w.GetSize() }
func (g *Window) ScaleFactor() float64        { return g.scale }
func (g *Window) RequestRedraw()              { g.redraw = true }
func (g *Window) FramebufferSize() (int, int) { return g.w.GetFramebufferSize() }
func (g *Window) SetTitle(t string)           { g.w.SetTitle(t) }

func (g *Window) SetVisible(visible bool) {
	if visible {
		g.w.Show()
	} else {
		g.w.Hide()
	}
}

// SetCursorIcon switches the cursor shape. Shapes GLFW 3.3 lacks fall back
// to the arrow.
func (g *Window) SetCursorIcon(icon core.CursorIcon) {
	if icon == g.cursor {
		return
	}
	g.cursor = icon
	if icon == cursorNone {
		g.w.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
		return
	}
	g.w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	c, ok := g.cursors[icon]
	if !ok {
		c = glfw.CreateStandardCursor(standardCursor(icon))
		g.cursors[icon] = c
	}
	g.w.SetCursor(c)
}

func (g *Window) Destroy() {
	for _, c := range g.cursors {
		c.Destroy()
	}
	clear(g.cursors)
	g.w.Destroy()
	glfw.Terminate()
}

// gl context, used by the OpenGL device
func (g *Window) MakeContextCurrent() { g.w.MakeContextCurrent() }
func (g *Window) SwapBuffers()        { g.w.SwapBuffers() }
func (g *Window) SwapInterval(i int)  { glfw.SwapInterval(i) }
