package ui

import "github.com/hubastard/hazel/engine/colors"

// SliderState survives view rebuilds so a drag keeps going.
type SliderState struct{ dragging bool }

func (s *SliderState) Dragging() bool { return s.dragging }

type UISlider struct {
	Common[*UISlider]
	state      *SliderState
	min, max   float32
	value      float32
	onChange   func(float32) Message
	railColor  colors.Color
	fillColor  colors.Color
	handleSize float32
}

// Slider publishes onChange(v) while dragged, v in [min, max].
func Slider(state *SliderState, min, max, value float32, onChange func(float32) Message) *UISlider {
	s := &UISlider{
		state:      state,
		min:        min,
		max:        max,
		value:      clamp(value, min, max),
		onChange:   onChange,
		railColor:  colors.Color{0.6, 0.6, 0.6, 1},
		fillColor:  colors.Color{0.26, 0.59, 0.98, 1},
		handleSize: 12,
	}
	s.Common = NewCommon(s)
	s.base.color = colors.White
	return s
}

func (l *UISlider) RailColor(c colors.Color) *UISlider { l.railColor = c; return l }
func (l *UISlider) FillColor(c colors.Color) *UISlider { l.fillColor = c; return l }

// Layout asks for a 150x20 rail.
func (l *UISlider) Layout(_ *Context, c Constraints) LayoutResult {
	l.base.size = [2]float32{l.base.resolve(0, 150, c), l.base.resolve(1, 20, c)}
	return LayoutResult{Size: l.base.size}
}

// valueAt maps an x coordinate on the rail to a slider value.
func (l *UISlider) valueAt(x float32) float32 {
	w := l.base.size[0] - l.handleSize
	if w <= 0 {
		return l.min
	}
	t := clamp((x-l.base.position[0]-l.handleSize/2)/w, 0, 1)
	return l.min + t*(l.max-l.min)
}

func (l *UISlider) OnEvent(ev Event, cursor [2]float32, shell *Shell) {
	switch ev := ev.(type) {
	case MouseButtonPressed:
		if ev.Button != MouseLeft || !l.base.Contains(cursor[0], cursor[1]) {
			return
		}
		l.state.dragging = true
		l.change(cursor[0], shell)
	case CursorMoved:
		if l.state.dragging {
			l.change(ev.X, shell)
		}
	case MouseButtonReleased:
		if ev.Button == MouseLeft {
			l.state.dragging = false
		}
	}
}

func (l *UISlider) change(x float32, shell *Shell) {
	if v := l.valueAt(x); v != l.value {
		l.value = v
		shell.Publish(l.onChange(v))
	}
}

func (l *UISlider) Interaction(cursor [2]float32) (CursorIcon, bool) {
	if l.state.dragging {
		return CursorDrag, true
	}
	if l.base.Contains(cursor[0], cursor[1]) {
		return CursorPointer, true
	}
	return CursorDefault, false
}

func (l *UISlider) Draw(ctx *Context) {
	x, y := l.base.Pos()
	w, h := l.base.Size()
	cy := y + h/2
	t := float32(0)
	if l.max > l.min {
		t = (l.value - l.min) / (l.max - l.min)
	}
	hx := x + l.handleSize/2 + t*(w-l.handleSize)

	ctx.Renderer.DrawQuad(x+w/2, cy, w, 4, l.railColor, 0)
	ctx.Renderer.DrawQuad((x+hx)/2, cy, hx-x, 4, l.fillColor, 0)
	handle := l.base.color
	if l.state.dragging {
		handle = handle.Scale(0.85)
	}
	ctx.Renderer.DrawQuad(hx, cy, l.handleSize, h, handle, 0)
}
