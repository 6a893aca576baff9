package core

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/logging"
	"github.com/hubastard/hazel/engine/profiler"
)

// Layer is a unit of behaviour driven by the Application. Hooks are called
// on the main loop goroutine; app and frame are only valid for the duration
// of the call.
//
// Layers are compared by identity, so implementations should be pointers.
// Embed BaseLayer to get no-op defaults for every hook.
type Layer interface {
	Name() string
	OnAttach(app *Application) error
	OnDetach(app *Application)
	OnUpdate(app *Application, dt time.Duration)
	// OnBeforeRender runs after every layer updated and before the frame is acquired.
	OnBeforeRender(app *Application)
	OnRender(app *Application, frame *gfx.Frame)
	OnEvent(app *Application, ev Event)
	// OnRawEvent sees every platform event before it is translated.
	OnRawEvent(app *Application, ev RawEvent)
}

// BaseLayer implements every Layer hook as a no-op.
type BaseLayer struct {
	LayerName string
}

func (b BaseLayer) Name() string {
	if b.LayerName == "" {
		return "layer"
	}
	return b.LayerName
}

func (BaseLayer) OnAttach(*Application) error          { return nil }
func (BaseLayer) OnDetach(*Application)                {}
func (BaseLayer) OnUpdate(*Application, time.Duration) {}
func (BaseLayer) OnBeforeRender(*Application)          {}
func (BaseLayer) OnRender(*Application, *gfx.Frame)    {}
func (BaseLayer) OnEvent(*Application, Event)          {}
func (BaseLayer) OnRawEvent(*Application, RawEvent)    {}

// LayerStack orders layers in front of overlays. Entries before the insert
// cursor are layers in push order, entries from the cursor on are overlays
// in push order. Pushing never calls a hook.
type LayerStack struct {
	list     []Layer
	insert   int
	attached bool
	snap     []Layer

	// walks counts the running ForEach calls; popped holds entries removed
	// while one runs, which the remaining walks skip.
	walks  int
	popped []Layer
}

// PushLayer inserts l after the last layer and before every overlay.
func (ls *LayerStack) PushLayer(l Layer) {
	ls.unpop(l)
	ls.list = append(ls.list, nil)
	copy(ls.list[ls.insert+1:], ls.list[ls.insert:])
	ls.list[ls.insert] = l
	ls.insert++
}

// PushOverlay appends l after every other entry.
func (ls *LayerStack) PushOverlay(l Layer) {
	ls.unpop(l)
	ls.list = append(ls.list, l)
}

// PopLayer removes l from the layers. It panics if l is not a layer of the stack.
func (ls *LayerStack) PopLayer(l Layer) {
	i := ls.index(l, 0, ls.insert)
	if i < 0 {
		panic(fmt.Sprintf("core: layer %q was not found", l.Name()))
	}
	ls.remove(i)
	ls.insert--
}

// PopOverlay removes l from the overlays. It panics if l is not an overlay of the stack.
func (ls *LayerStack) PopOverlay(l Layer) {
	i := ls.index(l, ls.insert, len(ls.list))
	if i < 0 {
		panic(fmt.Sprintf("core: overlay %q was not found", l.Name()))
	}
	ls.remove(i)
}

func (ls *LayerStack) index(l Layer, from, to int) int {
	for i := from; i < to; i++ {
		if ls.list[i] == l {
			return i
		}
	}
	return -1
}

func (ls *LayerStack) remove(i int) {
	if ls.walks > 0 {
		ls.popped = append(ls.popped, ls.list[i])
	}
	copy(ls.list[i:], ls.list[i+1:])
	ls.list[len(ls.list)-1] = nil
	ls.list = ls.list[:len(ls.list)-1]
}

func (ls *LayerStack) unpop(l Layer) {
	if i := slices.Index(ls.popped, l); i >= 0 {
		ls.popped = slices.Delete(ls.popped, i, i+1)
	}
}

func (ls *LayerStack) Len() int { return len(ls.list) }

// LayerCount is the number of entries in front of the overlays.
func (ls *LayerStack) LayerCount() int { return ls.insert }

// Attached reports whether OnAttach ran and OnDetach did not yet.
func (ls *LayerStack) Attached() bool { return ls.attached }

// Layers returns a copy of the stack in dispatch order.
func (ls *LayerStack) Layers() []Layer {
	out := make([]Layer, len(ls.list))
	copy(out, ls.list)
	return out
}

// ForEach calls f for every entry in dispatch order. f may push or pop
// entries; the walk covers the stack as it was when ForEach started, minus
// the entries popped since.
func (ls *LayerStack) ForEach(f func(Layer)) {
	snap := ls.snap
	ls.snap = nil // nested walks get their own buffer
	snap = append(snap[:0], ls.list...)
	ls.walks++
	for _, l := range snap {
		if len(ls.popped) > 0 && slices.Contains(ls.popped, l) {
			continue
		}
		f(l)
	}
	ls.walks--
	if ls.walks == 0 {
		clear(ls.popped)
		ls.popped = ls.popped[:0]
	}
	clear(snap)
	ls.snap = snap
}

// OnAttach attaches every entry in order. A failing layer does not stop the
// others; all failures are returned joined.
func (ls *LayerStack) OnAttach(app *Application) error {
	var errs []error
	ls.attached = true
	ls.ForEach(func(l Layer) {
		if err := l.OnAttach(app); err != nil {
			logging.Logger().Error("layer attach failed", "layer", l.Name(), "err", err)
			errs = append(errs, fmt.Errorf("core: attach %q: %w", l.Name(), err))
		}
	})
	return errors.Join(errs...)
}

// OnDetach detaches every entry, in the same order as OnAttach.
func (ls *LayerStack) OnDetach(app *Application) {
	ls.ForEach(func(l Layer) { l.OnDetach(app) })
	ls.attached = false
}

func (ls *LayerStack) OnUpdate(app *Application, dt time.Duration) {
	ls.ForEach(func(l Layer) {
		defer profiler.Start(l.Name() + ".update")()
		l.OnUpdate(app, dt)
	})
}

func (ls *LayerStack) OnBeforeRender(app *Application) {
	ls.ForEach(func(l Layer) { l.OnBeforeRender(app) })
}

// OnRender panics when the stack was never attached.
func (ls *LayerStack) OnRender(app *Application, frame *gfx.Frame) {
	if !ls.attached {
		panic("core: render before the layer stack was attached")
	}
	ls.ForEach(func(l Layer) {
		defer profiler.Start(l.Name() + ".render")()
		l.OnRender(app, frame)
	})
}

// OnEvent hands ev to every entry; there is no way to stop propagation.
func (ls *LayerStack) OnEvent(app *Application, ev Event) {
	ls.ForEach(func(l Layer) { l.OnEvent(app, ev) })
}

func (ls *LayerStack) OnRawEvent(app *Application, ev RawEvent) {
	ls.ForEach(func(l Layer) { l.OnRawEvent(app, ev) })
}
