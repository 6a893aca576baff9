package ui

import "github.com/hubastard/hazel/engine/colors"

// ButtonState survives view rebuilds so a press and its release can land
// on different trees.
type ButtonState struct{ pressed bool }

type UIButton struct {
	Common[*UIButton]
	label   *UILabel
	state   *ButtonState
	onPress Message
}

// Button publishes onPress when released over after being pressed.
func Button(str string, state *ButtonState, onPress Message) *UIButton {
	l := &UIButton{state: state, onPress: onPress}
	l.Common = NewCommon(l)
	l.label = Label(str)
	l.Children(l.label)
	l.base.color = colors.Color{0.3, 0.3, 0.35, 1}
	l.base.padding = [4]float32{10, 10, 10, 10}
	return l
}

func (l *UIButton) OnEvent(ev Event, cursor [2]float32, shell *Shell) {
	switch ev := ev.(type) {
	case MouseButtonPressed:
		if ev.Button == MouseLeft && l.base.Contains(cursor[0], cursor[1]) {
			l.state.pressed = true
		}
	case MouseButtonReleased:
		if ev.Button != MouseLeft || !l.state.pressed {
			return
		}
		l.state.pressed = false
		if l.base.Contains(cursor[0], cursor[1]) {
			shell.Publish(l.onPress)
		}
	}
}

func (l *UIButton) Interaction(cursor [2]float32) (CursorIcon, bool) {
	if l.base.Contains(cursor[0], cursor[1]) {
		return CursorPointer, true
	}
	return CursorDefault, false
}

func (l *UIButton) Layout(ctx *Context, c Constraints) LayoutResult {
	inset := l.base.inset()
	var inner Constraints
	for axis := range 2 {
		inner.Max[axis] = maxf(0, bound(c.Max[axis])-inset[axis])
	}
	content := l.label.Layout(ctx, inner).Size

	label := l.label.Node()
	x, y := l.base.innerPosition()
	moveTo(l.label, x, y)
	for axis := range 2 {
		l.base.size[axis] = l.base.resolve(axis, content[axis]+inset[axis], c)
		room := maxf(0, l.base.size[axis]-inset[axis])
		label.size[axis] = clamp(content[axis], 0, room)
		if label.mode(axis) == SizeModeExpand {
			label.size[axis] = room
		}
	}
	return LayoutResult{Size: l.base.size}
}

func (l *UIButton) Draw(ctx *Context) {
	bg := l.base.color
	if l.state.pressed {
		bg = bg.Scale(0.85)
	}
	l.base.fill(ctx, bg)
	l.label.Draw(ctx)
}
