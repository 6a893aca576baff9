package layers

import (
	"time"

	"github.com/hubastard/hazel/engine/core"
	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/imui"
	"github.com/hubastard/hazel/engine/logging"
	"github.com/hubastard/hazel/engine/profiler"
)

const (
	debugFontSize = 16
	fpsWindow     = 500 * time.Millisecond
)

// Widget ids of the debug panel.
const (
	PanelID = iota + 1
	VSyncID
)

// DebugUI is an immediate-mode "Debug info" panel. The frame is declared
// in OnBeforeRender and drawn once in OnRender.
type DebugUI struct {
	core.BaseLayer
	overlay
	ui       *imui.Ctx
	frame    *imui.Frame
	settings Settings
	moved    bool
	vsync    bool

	pressed  bool
	released bool

	fps       float64
	fpsFrames int
	fpsTime   time.Duration
}

func NewDebugUI() *DebugUI {
	return &DebugUI{BaseLayer: core.BaseLayer{LayerName: "DebugUI"}}
}

// UI exposes the immediate-mode context, mostly for inspection.
func (l *DebugUI) UI() *imui.Ctx { return l.ui }

// Panel is the current top-left corner of the panel.
func (l *DebugUI) Panel() [2]float32 { return l.settings.DebugUI.Panel }

// FPS is the frame rate averaged over the last half second.
func (l *DebugUI) FPS() float64 { return l.fps }

func (l *DebugUI) OnAttach(app *core.Application) error {
	o, err := newOverlay(app, debugFontSize)
	if err != nil {
		return err
	}
	l.overlay = o
	l.ui = imui.New(imui.Painter{R2D: o.r2d, Font: o.font}.Measure)
	l.vsync = app.VSync()

	l.settings = DefaultSettings()
	if path := app.SettingsPath(); path != "" {
		s, err := LoadSettings(path)
		if err != nil {
			logging.Logger().Warn("ui settings ignored", "path", path, "error", err)
		}
		l.settings = s
	}
	return nil
}

func (l *DebugUI) OnDetach(app *core.Application) {
	if path := app.SettingsPath(); path != "" && l.moved {
		if err := SaveSettings(path, l.settings); err != nil {
			logging.Logger().Error("ui settings not saved", "path", path, "error", err)
		}
	}
	l.frame = nil
	l.release()
}

func (l *DebugUI) OnUpdate(_ *core.Application, dt time.Duration) {
	l.fpsFrames++
	l.fpsTime += dt
	if l.fpsTime >= fpsWindow {
		l.fps = float64(l.fpsFrames) / l.fpsTime.Seconds()
		l.fpsFrames = 0
		l.fpsTime = 0
	}
}

func (l *DebugUI) OnEvent(app *core.Application, ev core.Event) {
	switch e := ev.(type) {
	case core.EventMouseButtonPressed:
		if e.Button == core.MouseButtonLeft {
			l.pressed = true
		}
	case core.EventMouseButtonReleased:
		if e.Button == core.MouseButtonLeft {
			l.released = true
		}
	case core.EventKeyPressed:
		if e.Key == core.KeyP && app.Input().Modifiers()&core.ModControl != 0 {
			if path, err := profiler.Open(); err != nil {
				logging.Logger().Warn("profiler dump failed", "error", err)
			} else {
				logging.Logger().Info("profiler dump", "path", path)
			}
		}
	}
}

func (l *DebugUI) OnBeforeRender(app *core.Application) {
	in := app.Input()
	mx, my := in.MousePosition()
	f := l.ui.NewFrame(imui.Input{
		MouseX:        float32(mx),
		MouseY:        float32(my),
		MouseDown:     in.IsMouseButtonPressed(core.MouseButtonLeft),
		MousePressed:  l.pressed,
		MouseReleased: l.released,
	})
	l.pressed, l.released = false, false

	if f.BeginPanel(PanelID, "Debug info", &l.settings.DebugUI.Panel) {
		l.moved = true
	}
	frameTime := app.FrameTime()
	f.Labelf("Frame time: %.3f ms", float64(frameTime.Microseconds())/1000)
	f.Labelf("FPS: %.1f", l.fps)
	f.Labelf("Mouse: %.0f, %.0f", mx, my)
	w, h := app.Surface().Size()
	f.Labelf("Surface: %dx%d", w, h)
	f.Labelf("Recreations: %d", app.Surface().Recreations())
	f.Labelf("Memory: %.2f MB", float64(profiler.MemoryUsage())/(1<<20))
	f.Separator()
	if f.Checkbox(VSyncID, "V-Sync", &l.vsync) {
		if err := app.SetVSync(l.vsync); err != nil {
			logging.Logger().Error("toggle vsync", "error", err)
			l.vsync = app.VSync()
		}
	}
	f.EndPanel()
	l.frame = f
}

func (l *DebugUI) OnRender(_ *core.Application, frame *gfx.Frame) {
	if l.frame == nil {
		return
	}
	f := l.frame
	l.frame = nil
	l.draw(l.Name(), frame, func() {
		f.Render(imui.Painter{R2D: l.r2d, Font: l.font})
	})
}
