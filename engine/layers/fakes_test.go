package layers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hubastard/hazel/engine/core"
	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/gfx/gfxtest"
)

// fakeWindow replays queued event batches, each followed by a redraw when
// one was requested.
type fakeWindow struct {
	batches [][]core.RawEvent
	redraw  bool
	polls   int
	cursor  core.CursorIcon
}

func (w *fakeWindow) queue(evs ...core.RawEvent) { w.batches = append(w.batches, evs) }

func (w *fakeWindow) Size() (int, int)                   { return 800, 600 }
func (w *fakeWindow) ScaleFactor() float64               { return 1 }
func (w *fakeWindow) RequestRedraw()                     { w.redraw = true }
func (w *fakeWindow) FramebufferSize() (int, int)        { return 800, 600 }
func (w *fakeWindow) SetCursorIcon(icon core.CursorIcon) { w.cursor = icon }
func (w *fakeWindow) SetVisible(bool)                    {}
func (w *fakeWindow) SetTitle(string)                    {}
func (w *fakeWindow) Destroy()                           {}

func (w *fakeWindow) PollEvents() []core.RawEvent {
	w.polls++
	var out []core.RawEvent
	if len(w.batches) > 0 {
		out = append(out, w.batches[0]...)
		w.batches = w.batches[1:]
	}
	if w.polls > 100 {
		out = append(out, core.RawCloseRequested{})
	}
	if w.redraw {
		w.redraw = false
		out = append(out, core.RawRedrawRequested{})
	}
	return out
}

// hook runs fn with the tick number on every update.
type hook struct {
	core.BaseLayer
	ticks int
	fn    func(app *core.Application, tick int)
}

func newHook(fn func(app *core.Application, tick int)) *hook {
	return &hook{BaseLayer: core.BaseLayer{LayerName: "hook"}, fn: fn}
}

func (h *hook) OnUpdate(app *core.Application, _ time.Duration) {
	h.ticks++
	h.fn(app, h.ticks)
}

func closeAt(n int) *hook {
	return newHook(func(app *core.Application, tick int) {
		if tick >= n {
			app.Close()
		}
	})
}

func newTestApp(t *testing.T, settings string) (*core.Application, *fakeWindow, *gfxtest.Device) {
	t.Helper()
	win := &fakeWindow{}
	dev := gfxtest.NewDevice()
	cfg := core.DefaultConfig()
	cfg.Title = "test"
	cfg.UISettingsPath = settings
	app, err := core.NewApplication(cfg, win, dev)
	require.NoError(t, err)
	return app, win, dev
}

func cursorAt(x, y float32) core.RawEvent {
	return core.RawCursorMoved{X: float64(x), Y: float64(y)}
}

func leftButton(state core.ElementState) core.RawEvent {
	return core.RawMouseInput{Button: core.MouseButtonLeft, State: state}
}

func count(cmds []gfx.Command, kind gfx.CommandKind) int {
	n := 0
	for _, c := range cmds {
		if c.Kind == kind {
			n++
		}
	}
	return n
}
