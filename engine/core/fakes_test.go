package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/gfx/gfxtest"
)

// fakeWindow replays queued event batches. Every poll ends with a redraw
// when one was requested; after maxPolls it asks to close so a broken test
// cannot spin forever.
type fakeWindow struct {
	batches   [][]RawEvent
	redraw    bool
	polls     int
	width     int
	height    int
	scale     float64
	visible   bool
	title     string
	cursor    CursorIcon
	destroyed bool
}

const maxPolls = 100

func newFakeWindow() *fakeWindow {
	return &fakeWindow{width: 800, height: 600, scale: 1}
}

func (w *fakeWindow) queue(evs ...RawEvent) { w.batches = append(w.batches, evs) }

func (w *fakeWindow) Size() (int, int) {
	return int(float64(w.width) / w.scale), int(float64(w.height) / w.scale)
}

func (w *fakeWindow) ScaleFactor() float64          { return w.scale }
func (w *fakeWindow) RequestRedraw()                { w.redraw = true }
func (w *fakeWindow) FramebufferSize() (int, int)   { return w.width, w.height }
func (w *fakeWindow) SetCursorIcon(icon CursorIcon) { w.cursor = icon }
func (w *fakeWindow) SetVisible(visible bool)       { w.visible = visible }
func (w *fakeWindow) SetTitle(title string)         { w.title = title }
func (w *fakeWindow) Destroy()                      { w.destroyed = true }

func (w *fakeWindow) PollEvents() []RawEvent {
	w.polls++
	var out []RawEvent
	if len(w.batches) > 0 {
		out = append(out, w.batches[0]...)
		w.batches = w.batches[1:]
	}
	if w.polls > maxPolls {
		out = append(out, RawCloseRequested{})
	}
	if w.redraw {
		w.redraw = false
		out = append(out, RawRedrawRequested{})
	}
	return out
}

// recorder collects hook calls from every recLayer sharing it.
type recorder struct{ calls []string }

func (r *recorder) add(s string) { r.calls = append(r.calls, s) }

// recLayer logs its hooks as "<name>.<hook>" and runs the optional funcs.
type recLayer struct {
	BaseLayer
	rec       *recorder
	attachErr error
	ticks     int

	update func(app *Application, tick int)
	render func(app *Application, f *gfx.Frame)
	event  func(app *Application, ev Event)
}

func newRecLayer(name string, rec *recorder) *recLayer {
	return &recLayer{BaseLayer: BaseLayer{LayerName: name}, rec: rec}
}

func (l *recLayer) OnAttach(*Application) error {
	l.rec.add(l.Name() + ".attach")
	return l.attachErr
}

func (l *recLayer) OnDetach(*Application) { l.rec.add(l.Name() + ".detach") }

func (l *recLayer) OnUpdate(app *Application, _ time.Duration) {
	l.rec.add(l.Name() + ".update")
	l.ticks++
	if l.update != nil {
		l.update(app, l.ticks)
	}
}

func (l *recLayer) OnBeforeRender(*Application) { l.rec.add(l.Name() + ".before") }

func (l *recLayer) OnRender(app *Application, f *gfx.Frame) {
	l.rec.add(l.Name() + ".render")
	if l.render != nil {
		l.render(app, f)
	}
}

func (l *recLayer) OnEvent(app *Application, ev Event) {
	l.rec.add(l.Name() + ".event")
	if l.event != nil {
		l.event(app, ev)
	}
}

func (l *recLayer) OnRawEvent(*Application, RawEvent) { l.rec.add(l.Name() + ".raw") }

// closeAfter returns an update func that closes the application on tick n.
func closeAfter(n int) func(*Application, int) {
	return func(app *Application, tick int) {
		if tick >= n {
			app.Close()
		}
	}
}

func newTestApp(t *testing.T) (*Application, *fakeWindow, *gfxtest.Device) {
	t.Helper()
	win := newFakeWindow()
	dev := gfxtest.NewDevice()
	cfg := DefaultConfig()
	cfg.Title = "test"
	app, err := NewApplication(cfg, win, dev)
	require.NoError(t, err)

	// a fixed 16ms step between ticks
	clock := time.Unix(0, 0)
	app.now = func() time.Time {
		clock = clock.Add(16 * time.Millisecond)
		return clock
	}
	return app, win, dev
}
