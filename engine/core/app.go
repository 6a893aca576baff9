package core

import (
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/hubastard/hazel/engine/colors"
	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/logging"
)

// Window is the platform window the Application drives.
//
// Size reports the logical size, FramebufferSize the physical one the
// surface is configured with.
type Window interface {
	gpucontext.WindowProvider

	// PollEvents returns the pending raw events. It blocks until at least
	// one event arrives unless a redraw was requested, in which case the
	// returned batch ends with RawRedrawRequested.
	PollEvents() []RawEvent
	FramebufferSize() (width, height int)
	SetCursorIcon(icon CursorIcon)
	SetVisible(visible bool)
	SetTitle(title string)
	Destroy()
}

// State is the lifecycle state of an Application.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateStopRequested
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateStopRequested:
		return "stop-requested"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Application owns the window, the render surface and the input context
// and drives the layer stack from Run.
type Application struct {
	name         string
	state        State
	layers       LayerStack
	input        *InputContext
	window       Window
	surface      *gfx.Surface
	settingsPath string
	visible      bool

	lastFrame time.Time
	delta     time.Duration
	frames    uint64
	now       func() time.Time
}

// NewApplication validates cfg and configures a surface on device sized to
// the window's framebuffer. The Application takes ownership of window and
// device and releases both when Run returns.
func NewApplication(cfg Config, window Window, device gfx.Device) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, h := window.FramebufferSize()
	surface, err := gfx.NewSurface(device, gfx.SurfaceConfig{
		Width:       w,
		Height:      h,
		ScaleFactor: window.ScaleFactor(),
		PresentMode: gfx.PresentModeFor(cfg.VSync),
	})
	if err != nil {
		return nil, fmt.Errorf("core: create surface: %w", err)
	}
	surface.SetClearColor(cfg.ClearColor.GPU())
	window.SetTitle(cfg.Title)

	logging.Logger().Info("application created",
		"name", cfg.Title, "width", w, "height", h, "vsync", cfg.VSync)

	return &Application{
		name:         cfg.Title,
		input:        NewInputContext(),
		window:       window,
		surface:      surface,
		settingsPath: cfg.UISettingsPath,
		visible:      cfg.Visible,
		now:          time.Now,
	}, nil
}

func (a *Application) Name() string          { return a.name }
func (a *Application) State() State          { return a.state }
func (a *Application) Input() *InputContext  { return a.input }
func (a *Application) Window() Window        { return a.window }
func (a *Application) Surface() *gfx.Surface { return a.surface }
func (a *Application) Device() gfx.Device    { return a.surface.Device() }

// SettingsPath is the optional UI settings file, empty when none was configured.
func (a *Application) SettingsPath() string { return a.settingsPath }

// DeltaTime is the time between the start of the previous tick and the current one.
func (a *Application) DeltaTime() time.Duration { return a.delta }

// FrameTime is how long the last presented frame took from acquire to present.
func (a *Application) FrameTime() time.Duration { return a.surface.LastFrameDuration() }

// FrameCount is the number of frames presented so far.
func (a *Application) FrameCount() uint64 { return a.frames }

func (a *Application) VSync() bool { return a.surface.VSync() }

// SetVSync switches the present mode. The surface is recreated once, before
// the next frame is acquired.
func (a *Application) SetVSync(on bool) error { return a.surface.SetVSync(on) }

func (a *Application) ClearColor() colors.Color { return colors.FromGPU(a.surface.ClearColor()) }

func (a *Application) SetClearColor(c colors.Color) { a.surface.SetClearColor(c.GPU()) }

// Close asks the loop to stop once the current tick has completed.
func (a *Application) Close() {
	if a.state == StateRunning {
		a.state = StateStopRequested
		logging.Logger().Debug("close requested")
	}
}

// Destroy releases the device and window of an application that never ran,
// for setup that fails after NewApplication. It does nothing once Run was called.
func (a *Application) Destroy() {
	if a.state != StateCreated {
		return
	}
	a.surface.Device().Destroy()
	a.window.Destroy()
	a.state = StateStopped
}

// PushLayer adds l after the existing layers. Once the application runs,
// l is attached first and not pushed if attaching fails.
func (a *Application) PushLayer(l Layer) error {
	if err := a.attachLate(l); err != nil {
		return err
	}
	a.layers.PushLayer(l)
	return nil
}

// PushOverlay adds l after every layer and overlay, attaching it like PushLayer.
func (a *Application) PushOverlay(l Layer) error {
	if err := a.attachLate(l); err != nil {
		return err
	}
	a.layers.PushOverlay(l)
	return nil
}

func (a *Application) attachLate(l Layer) error {
	if !a.layers.Attached() {
		return nil
	}
	if err := l.OnAttach(a); err != nil {
		return fmt.Errorf("core: attach %q: %w", l.Name(), err)
	}
	return nil
}

// PopLayer removes l, detaching it if the stack is attached. It panics if l
// is not a layer of the application.
func (a *Application) PopLayer(l Layer) {
	a.layers.PopLayer(l)
	if a.layers.Attached() {
		l.OnDetach(a)
	}
}

// PopOverlay is PopLayer for overlays.
func (a *Application) PopOverlay(l Layer) {
	a.layers.PopOverlay(l)
	if a.layers.Attached() {
		l.OnDetach(a)
	}
}

// Layers returns the layers then overlays in dispatch order.
func (a *Application) Layers() []Layer { return a.layers.Layers() }

// PresentMode is the present mode of the configured swap chain.
func (a *Application) PresentMode() gputypes.PresentMode { return a.surface.PresentMode() }
