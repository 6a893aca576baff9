package imui

import "github.com/hubastard/hazel/engine/colors"

// ===== Label =====

func (f *Frame) Label(s string) { f.LabelColor(s, f.ctx.style.Text) }

// Labelf formats into the context's frame buffer; only %s, %d, %f and %%
// are understood.
func (f *Frame) Labelf(format string, args ...any) { f.Label(f.ctx.text.Sprintf(format, args...)) }

func (f *Frame) LabelColor(s string, color colors.Color) {
	w, h := f.ctx.measure(s)
	i := f.emit(cmd{kind: cmdLabel, text: s, color: color})
	f.addItem(i, w, h, false)
}

// Separator draws a thin line across the enclosing vertical view.
func (f *Frame) Separator() {
	i := f.emit(cmd{kind: cmdSeparator, bg: f.ctx.style.Separator})
	f.addItem(i, 0, 1, true)
}

// ===== Button =====

// Button reports whether it was clicked: pressed and released over it.
func (f *Frame) Button(id int, s string) bool {
	st := f.ctx.style
	hot, active, clicked := f.interact(id)
	tw, th := f.ctx.measure(s)
	i := f.emit(cmd{
		kind:   cmdButton,
		id:     id,
		text:   s,
		color:  st.Text,
		bg:     st.Button,
		hot:    hot,
		active: active,
	})
	f.addItem(i, tw+2*st.Padding, th+2*st.Padding, false)
	return clicked
}

// Checkbox toggles *value when clicked and reports whether it changed.
func (f *Frame) Checkbox(id int, label string, value *bool) bool {
	st := f.ctx.style
	hot, active, clicked := f.interact(id)
	if clicked {
		*value = !*value
	}
	tw, th := f.ctx.measure(label)
	i := f.emit(cmd{
		kind:    cmdCheckbox,
		id:      id,
		text:    label,
		color:   st.Text,
		bg:      st.Button,
		hot:     hot,
		active:  active,
		checked: *value,
	})
	f.addItem(i, st.BoxSize+st.Gap+tw, max(st.BoxSize, th), false)
	return clicked
}

// ===== Panel =====

// BeginPanel opens a vertical panel at *pos with a title bar that drags it.
// It reports whether the panel moved this frame.
func (f *Frame) BeginPanel(id int, title string, pos *[2]float32) (moved bool) {
	st := f.ctx.style
	_, active, _ := f.interact(id)
	if active && f.in.MouseDown && !f.in.MousePressed && (f.dx != 0 || f.dy != 0) {
		pos[0] += f.dx
		pos[1] += f.dy
		moved = true
	}

	f.BeginView(Props{
		Axis:    Vertical,
		Gap:     st.Gap,
		Padding: Insets(st.Padding, st.Padding, st.Padding, st.Padding),
		Bg:      st.PanelBg,
		BoundsX: pos[0],
		BoundsY: pos[1],
	})
	tw, th := f.ctx.measure(title)
	i := f.emit(cmd{kind: cmdTitle, id: id, text: title, color: st.Text, bg: st.TitleBg, active: active})
	f.addItem(i, tw+2*st.Padding, th+st.Padding, true)
	return moved
}

func (f *Frame) EndPanel() { f.EndView() }

// interact hit-tests id against its rect from the previous layout.
func (f *Frame) interact(id int) (hot, active, clicked bool) {
	st := f.ctx.state[id]
	hot = st.seen && pointIn(st.rect, f.in.MouseX, f.in.MouseY)
	if f.in.MousePressed && hot {
		st.active = true
	}
	if f.in.MouseReleased {
		clicked = st.active && hot
		st.active = false
	}
	f.ctx.state[id] = st
	if hot {
		f.hovered = true
	}
	return hot, st.active, clicked
}

func pointIn(r [4]float32, x, y float32) bool {
	return x >= r[0] && x <= r[0]+r[2] && y >= r[1] && y <= r[1]+r[3]
}

// ===== Drawing =====

func (f *Frame) draw(r Renderer, c *cmd) {
	st := f.ctx.style
	switch c.kind {
	case cmdBgQuad, cmdSeparator:
		fillRect(r, c.x, c.y, c.w, c.h, c.bg)
	case cmdLabel:
		r.DrawText(c.x, c.y, c.text, c.color)
	case cmdButton:
		fillRect(r, c.x, c.y, c.w, c.h, feedback(c.bg, c.hot, c.active))
		tw, th := r.Measure(c.text)
		r.DrawText(c.x+(c.w-tw)*0.5, c.y+(c.h-th)*0.5, c.text, c.color)
	case cmdCheckbox:
		by := c.y + (c.h-st.BoxSize)*0.5
		fillRect(r, c.x, by, st.BoxSize, st.BoxSize, feedback(c.bg, c.hot, c.active))
		if c.checked {
			inset := st.BoxSize * 0.25
			fillRect(r, c.x+inset, by+inset, st.BoxSize-2*inset, st.BoxSize-2*inset, st.Check)
		}
		_, th := r.Measure(c.text)
		r.DrawText(c.x+st.BoxSize+st.Gap, c.y+(c.h-th)*0.5, c.text, c.color)
	case cmdTitle:
		fillRect(r, c.x, c.y, c.w, c.h, feedback(c.bg, false, c.active))
		r.DrawText(c.x+st.Padding, c.y+st.Padding*0.5, c.text, c.color)
	}
}

func fillRect(r Renderer, x, y, w, h float32, color colors.Color) {
	if color[3] <= 0 || w <= 0 || h <= 0 {
		return
	}
	r.DrawQuad(x+w*0.5, y+h*0.5, w, h, color, 0)
}

// feedback darkens pressed widgets and lightens hovered ones.
func feedback(bg colors.Color, hot, active bool) colors.Color {
	switch {
	case active:
		return bg.Scale(0.85)
	case hot:
		return bg.Scale(1.05)
	}
	return bg
}
