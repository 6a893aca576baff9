package core

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/gfx/gfxtest"
)

func TestNewApplicationConfiguresSurface(t *testing.T) {
	app, win, dev := newTestApp(t)

	assert.Equal(t, StateCreated, app.State())
	assert.Equal(t, "test", app.Name())
	assert.Equal(t, "test", win.title)
	require.Len(t, dev.Configs, 1)
	assert.Equal(t, 800, dev.Configs[0].Width)
	assert.Equal(t, 600, dev.Configs[0].Height)
	assert.True(t, app.VSync())
	assert.Equal(t, DefaultConfig().ClearColor, app.ClearColor())
}

func TestNewApplicationRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = -1
	_, err := NewApplication(cfg, newFakeWindow(), gfxtest.NewDevice())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTickOrderWithKeyPress(t *testing.T) {
	app, win, dev := newTestApp(t)
	rec := &recorder{}

	var pressedInUpdate, pressedInRender bool
	l1 := newRecLayer("L1", rec)
	l1.update = func(app *Application, _ int) {
		pressedInUpdate = app.Input().IsKeyPressed(KeySpace)
		app.Close()
	}
	l1.render = func(app *Application, _ *gfx.Frame) {
		pressedInRender = app.Input().IsKeyPressed(KeySpace)
	}
	o1 := newRecLayer("O1", rec)
	require.NoError(t, app.PushLayer(l1))
	require.NoError(t, app.PushOverlay(o1))

	win.queue(press(KeySpace))
	require.NoError(t, app.Run())

	assert.Equal(t, []string{
		"L1.attach", "O1.attach",
		// key press: raw first, then the translated event
		"L1.raw", "O1.raw", "L1.event", "O1.event",
		// redraw
		"L1.raw", "O1.raw",
		"L1.update", "O1.update",
		"L1.before", "O1.before",
		"L1.render", "O1.render",
		"L1.detach", "O1.detach",
	}, rec.calls)
	assert.True(t, pressedInUpdate)
	assert.True(t, pressedInRender)

	assert.Equal(t, StateStopped, app.State())
	assert.Equal(t, uint64(1), app.FrameCount())
	assert.Len(t, dev.Presented, 1)
	assert.True(t, dev.Destroyed)
	assert.True(t, win.destroyed)
	assert.True(t, win.visible)
}

func TestFrameRecordsClearBeforeLayerCommands(t *testing.T) {
	app, _, dev := newTestApp(t)
	l := newRecLayer("L", &recorder{})
	l.update = closeAfter(1)
	l.render = func(_ *Application, f *gfx.Frame) { f.Draw(3, 0) }
	require.NoError(t, app.PushLayer(l))
	require.NoError(t, app.Run())

	require.Len(t, dev.Submitted, 1)
	assert.Equal(t, []gfx.CommandKind{gfx.CommandClear, gfx.CommandDraw}, gfxtest.Kinds(dev.Submitted[0]))
	assert.Equal(t, app.ClearColor().GPU(), dev.Submitted[0][0].Color)
}

func TestDroppedFrameSkipsRenderAndRecovers(t *testing.T) {
	app, _, dev := newTestApp(t)
	rec := &recorder{}
	l := newRecLayer("L", rec)
	l.update = closeAfter(2)
	require.NoError(t, app.PushLayer(l))

	dev.FailAcquire(errors.New("timeout"))
	require.NoError(t, app.Run())

	renders := 0
	for _, c := range rec.calls {
		if c == "L.render" {
			renders++
		}
	}
	assert.Equal(t, 2, l.ticks)
	assert.Equal(t, 1, renders)
	assert.Len(t, dev.Presented, 1)
	assert.Equal(t, uint64(1), app.FrameCount())
}

func TestDeviceLostStopsTheLoop(t *testing.T) {
	app, win, dev := newTestApp(t)
	rec := &recorder{}
	require.NoError(t, app.PushLayer(newRecLayer("L", rec)))

	dev.FailAcquire(gfx.ErrDeviceLost)
	err := app.Run()

	assert.ErrorIs(t, err, gfx.ErrDeviceLost)
	assert.Equal(t, StateStopped, app.State())
	assert.Contains(t, rec.calls, "L.detach")
	assert.True(t, dev.Destroyed)
	assert.True(t, win.destroyed)
	assert.Equal(t, 1, win.polls)
}

func TestReleasedKeyLastsOneTick(t *testing.T) {
	app, win, _ := newTestApp(t)
	var released []bool
	l := newRecLayer("L", &recorder{})
	l.update = func(app *Application, tick int) {
		released = append(released, app.Input().IsKeyReleased(KeyA))
		if tick == 2 {
			app.Close()
		}
	}
	require.NoError(t, app.PushLayer(l))

	win.queue(press(KeyA), release(KeyA))
	require.NoError(t, app.Run())

	assert.Equal(t, []bool{true, false}, released)
	assert.False(t, app.Input().IsKeyPressed(KeyA))
}

func TestVSyncToggleRecreatesOnce(t *testing.T) {
	app, _, dev := newTestApp(t)
	l := newRecLayer("L", &recorder{})
	l.update = closeAfter(3)
	l.render = func(app *Application, _ *gfx.Frame) {
		if app.FrameCount() == 0 {
			require.NoError(t, app.SetVSync(false))
			require.NoError(t, app.SetVSync(false))
		}
	}
	require.NoError(t, app.PushLayer(l))
	require.NoError(t, app.Run())

	assert.Equal(t, 1, app.Surface().Recreations())
	require.Len(t, dev.Configs, 2)
	assert.Equal(t, gputypes.PresentModeMailbox, dev.Configs[1].PresentMode)

	require.Len(t, dev.Presented, 3)
	assert.Equal(t, gputypes.PresentModeFifo, dev.Presented[0].PresentMode)
	assert.Equal(t, gputypes.PresentModeMailbox, dev.Presented[1].PresentMode)
	for _, target := range dev.Presented {
		cfg := dev.Configs[target.Generation-1]
		assert.Equal(t, cfg.PresentMode, target.PresentMode, "generation %d", target.Generation)
	}
	assert.False(t, app.VSync())
}

func TestResizeEventsAreIdempotent(t *testing.T) {
	app, win, dev := newTestApp(t)
	var resizes []EventWindowResize
	l := newRecLayer("L", &recorder{})
	l.update = closeAfter(1)
	l.event = func(_ *Application, ev Event) {
		if r, ok := ev.(EventWindowResize); ok {
			resizes = append(resizes, r)
		}
	}
	require.NoError(t, app.PushLayer(l))

	win.queue(RawResized{Width: 1024, Height: 768}, RawResized{Width: 1024, Height: 768})
	require.NoError(t, app.Run())

	assert.Len(t, resizes, 2)
	assert.Equal(t, 1, app.Surface().Recreations())
	require.Len(t, dev.Presented, 1)
	assert.Equal(t, 1024, dev.Presented[0].Width)
}

func TestCloseRequestFinishesBatch(t *testing.T) {
	app, win, dev := newTestApp(t)
	rec := &recorder{}
	require.NoError(t, app.PushLayer(newRecLayer("L", rec)))

	win.queue(RawCloseRequested{})
	require.NoError(t, app.Run())

	// the redraw queued behind the close still renders
	assert.Equal(t, []string{
		"L.attach", "L.raw", "L.raw", "L.update", "L.before", "L.render", "L.detach",
	}, rec.calls)
	assert.Len(t, dev.Presented, 1)
}

func TestAttachErrorDoesNotStopRun(t *testing.T) {
	app, _, _ := newTestApp(t)
	rec := &recorder{}
	bad := newRecLayer("bad", rec)
	bad.attachErr = errors.New("missing asset")
	good := newRecLayer("good", rec)
	good.update = closeAfter(1)
	require.NoError(t, app.PushLayer(bad))
	require.NoError(t, app.PushOverlay(good))

	err := app.Run()
	assert.ErrorContains(t, err, "missing asset")
	assert.Contains(t, rec.calls, "good.render")
	assert.Contains(t, rec.calls, "bad.detach")
}

func TestPushWhileRunningAttaches(t *testing.T) {
	app, _, _ := newTestApp(t)
	rec := &recorder{}
	late := newRecLayer("late", rec)
	broken := newRecLayer("broken", rec)
	broken.attachErr = errors.New("boom")

	host := newRecLayer("host", rec)
	host.update = func(app *Application, tick int) {
		switch tick {
		case 1:
			require.NoError(t, app.PushOverlay(late))
			assert.ErrorContains(t, app.PushLayer(broken), "boom")
		case 2:
			app.PopOverlay(late)
			app.Close()
		}
	}
	require.NoError(t, app.PushLayer(host))
	require.NoError(t, app.Run())

	assert.Contains(t, rec.calls, "late.attach")
	assert.Contains(t, rec.calls, "late.render")
	assert.Contains(t, rec.calls, "late.detach")
	assert.Contains(t, rec.calls, "broken.attach")
	assert.NotContains(t, rec.calls, "broken.update")
	assert.Equal(t, []string{"host"}, names(app.Layers()))
}

func TestPoppedLayerGetsNoFurtherHooks(t *testing.T) {
	app, _, _ := newTestApp(t)
	rec := &recorder{}
	l1, l2 := newRecLayer("L1", rec), newRecLayer("L2", rec)
	l1.update = func(app *Application, tick int) {
		app.PopLayer(l2)
		app.Close()
	}
	require.NoError(t, app.PushLayer(l1))
	require.NoError(t, app.PushLayer(l2))
	require.NoError(t, app.Run())

	assert.Equal(t, []string{
		"L1.attach", "L2.attach",
		"L1.raw", "L2.raw",
		"L1.update", "L2.detach",
		"L1.before", "L1.render", "L1.detach",
	}, rec.calls)
}

func TestDeltaTime(t *testing.T) {
	app, _, _ := newTestApp(t)
	var deltas []time.Duration
	l := newRecLayer("L", &recorder{})
	l.update = func(app *Application, tick int) {
		deltas = append(deltas, app.DeltaTime())
		if tick == 2 {
			app.Close()
		}
	}
	require.NoError(t, app.PushLayer(l))
	require.NoError(t, app.Run())

	assert.Equal(t, []time.Duration{16 * time.Millisecond, 16 * time.Millisecond}, deltas)
}

func TestDestroyBeforeRun(t *testing.T) {
	app, win, dev := newTestApp(t)
	app.Destroy()

	assert.Equal(t, StateStopped, app.State())
	assert.True(t, dev.Destroyed)
	assert.True(t, win.destroyed)
	assert.Panics(t, func() { _ = app.Run() })
}

func TestDestroyAfterRunIsNoop(t *testing.T) {
	app, win, _ := newTestApp(t)
	l := newRecLayer("L", &recorder{})
	l.update = closeAfter(1)
	require.NoError(t, app.PushLayer(l))
	require.NoError(t, app.Run())

	win.destroyed = false
	app.Destroy()
	assert.False(t, win.destroyed)
}

func TestRunTwicePanics(t *testing.T) {
	app, _, _ := newTestApp(t)
	l := newRecLayer("L", &recorder{})
	l.update = closeAfter(1)
	require.NoError(t, app.PushLayer(l))
	require.NoError(t, app.Run())

	assert.Panics(t, func() { _ = app.Run() })
}

func TestPopMissingLayerPanics(t *testing.T) {
	app, _, _ := newTestApp(t)
	assert.PanicsWithValue(t, `core: layer "ghost" was not found`, func() {
		app.PopLayer(newRecLayer("ghost", &recorder{}))
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stop-requested", StateStopRequested.String())
	assert.Equal(t, "State(9)", State(9).String())
}
