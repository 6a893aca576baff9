package imui

import "github.com/hubastard/hazel/engine/colors"

// ===== Sizing & layout props =====

type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

type Align int

const (
	Start Align = iota
	Center
	End
	Stretch
)

type SizeMode int

const (
	SizeFit SizeMode = iota
	SizeFixed
	SizeExpand
)

type Sizing struct {
	WMode SizeMode
	HMode SizeMode
	WVal  float32 // for SizeFixed
	HVal  float32 // for SizeFixed
}

func Fit() Sizing            { return Sizing{WMode: SizeFit, HMode: SizeFit} }
func Expand() Sizing         { return Sizing{WMode: SizeExpand, HMode: SizeExpand} }
func Px(w, h float32) Sizing { return Sizing{WMode: SizeFixed, HMode: SizeFixed, WVal: w, HVal: h} }

type Insets4 struct{ L, T, R, B float32 }

func Insets(l, t, r, b float32) Insets4 { return Insets4{l, t, r, b} }

// Props describe a view. BoundsX/Y place a top-level view; nested views
// are placed by their parent. BoundsW/H are the space SizeExpand fills.
type Props struct {
	ID         int
	Axis       Axis
	MainAlign  Align
	CrossAlign Align
	Sizing     Sizing
	Gap        float32
	Padding    Insets4
	Bg         colors.Color // optional background
	BoundsX    float32
	BoundsY    float32
	BoundsW    float32
	BoundsH    float32
}

// ===== Internal structs =====

type viewScope struct {
	props     Props
	firstCmd  int // index in ctx.cmds where this view's commands begin
	firstItem int // index in ctx.items
	bgCmd     int // optional background command index
}

// item is a child waiting for placement: one widget command, or a nested
// view spanning nCmds commands laid out at the origin.
type item struct {
	iCmd    int
	nCmds   int
	view    bool
	stretch bool // fill the cross axis
	w, h    float32
}

type cmdKind uint8

const (
	cmdLabel cmdKind = iota
	cmdButton
	cmdBgQuad
	cmdCheckbox
	cmdSeparator
	cmdTitle
)

type cmd struct {
	kind cmdKind
	id   int

	// geom (resolved at EndView)
	x, y, w, h float32

	text    string
	color   colors.Color
	bg      colors.Color
	hot     bool
	active  bool
	checked bool
}

func (k cmdKind) interactive() bool {
	return k == cmdButton || k == cmdCheckbox || k == cmdTitle
}

type widgetState struct {
	rect   [4]float32 // x, y, w, h from the last layout
	seen   bool
	active bool
}

// ===== Begin/End view =====

func (f *Frame) BeginView(p Props) {
	ctx := f.ctx
	scope := viewScope{
		props:     p,
		firstCmd:  len(ctx.cmds),
		firstItem: len(ctx.items),
		bgCmd:     -1,
	}
	if p.Bg[3] > 0 {
		scope.bgCmd = f.emit(cmd{kind: cmdBgQuad, bg: p.Bg})
	}
	ctx.viewStack = append(ctx.viewStack, scope)
}

func (f *Frame) EndView() {
	ctx := f.ctx
	if len(ctx.viewStack) == 0 {
		panic("imui: EndView without BeginView")
	}

	// pop scope
	scope := ctx.viewStack[len(ctx.viewStack)-1]
	ctx.viewStack = ctx.viewStack[:len(ctx.viewStack)-1]
	nested := len(ctx.viewStack) > 0
	items := ctx.items[scope.firstItem:]
	p := scope.props

	// measure total main/cross span
	var totalMain, maxCross float32
	mainIsX := p.Axis == Horizontal
	for _, it := range items {
		if mainIsX {
			totalMain += it.w
			maxCross = max(maxCross, it.h)
		} else {
			totalMain += it.h
			maxCross = max(maxCross, it.w)
		}
	}
	if len(items) > 1 {
		totalMain += p.Gap * float32(len(items)-1)
	}

	// resolve self size
	var availW, availH float32
	switch p.Sizing.WMode {
	case SizeFixed:
		availW = p.Sizing.WVal
	case SizeExpand:
		availW = p.BoundsW
	default: // fit
		if mainIsX {
			availW = totalMain
		} else {
			availW = maxCross
		}
		availW += p.Padding.L + p.Padding.R
	}
	switch p.Sizing.HMode {
	case SizeFixed:
		availH = p.Sizing.HVal
	case SizeExpand:
		availH = p.BoundsH
	default: // fit
		if mainIsX {
			availH = maxCross
		} else {
			availH = totalMain
		}
		availH += p.Padding.T + p.Padding.B
	}

	// nested views resolve at the origin and are moved by their parent
	var ox, oy float32
	if !nested {
		ox, oy = p.BoundsX, p.BoundsY
	}
	x := ox + p.Padding.L
	y := oy + p.Padding.T
	w := max(0, availW-p.Padding.L-p.Padding.R)
	h := max(0, availH-p.Padding.T-p.Padding.B)

	if scope.bgCmd >= 0 {
		c := &ctx.cmds[scope.bgCmd]
		c.x, c.y, c.w, c.h = ox, oy, availW, availH
	}

	// compute starting offset for main align
	free := h - totalMain
	if mainIsX {
		free = w - totalMain
	}
	free = max(0, free)
	var cursor float32
	switch p.MainAlign {
	case Center:
		cursor = free * 0.5
	case End:
		cursor = free
	}

	crossSize := w
	if mainIsX {
		crossSize = h
	}
	for i, it := range items {
		itCross := it.w
		if mainIsX {
			itCross = it.h
		}
		if (p.CrossAlign == Stretch || it.stretch) && !it.view {
			itCross = crossSize
		}

		var crossPos float32
		switch p.CrossAlign {
		case Center:
			crossPos = (crossSize - itCross) * 0.5
		case End:
			crossPos = crossSize - itCross
		}

		var cx, cy, cw, ch float32
		if mainIsX {
			cx, cy, cw, ch = x+cursor, y+crossPos, it.w, itCross
			cursor += it.w
		} else {
			cx, cy, cw, ch = x+crossPos, y+cursor, itCross, it.h
			cursor += it.h
		}
		if i != len(items)-1 {
			cursor += p.Gap
		}

		if it.view {
			for j := it.iCmd; j < it.iCmd+it.nCmds; j++ {
				ctx.cmds[j].x += cx
				ctx.cmds[j].y += cy
			}
			continue
		}
		c := &ctx.cmds[it.iCmd]
		c.x, c.y, c.w, c.h = cx, cy, cw, ch
	}

	// clear this view's items
	ctx.items = ctx.items[:scope.firstItem]

	if nested {
		ctx.items = append(ctx.items, item{
			iCmd:  scope.firstCmd,
			nCmds: len(ctx.cmds) - scope.firstCmd,
			view:  true,
			w:     availW,
			h:     availH,
		})
		return
	}

	// top-level geometry is final: remember it for the next frame's hit tests
	for _, c := range ctx.cmds[scope.firstCmd:] {
		if !c.kind.interactive() {
			continue
		}
		st := ctx.state[c.id]
		st.rect = [4]float32{c.x, c.y, c.w, c.h}
		st.seen = true
		ctx.state[c.id] = st
	}
}

func (f *Frame) emit(c cmd) int {
	f.ctx.cmds = append(f.ctx.cmds, c)
	return len(f.ctx.cmds) - 1
}

// addItem queues a widget command for placement by the enclosing view.
func (f *Frame) addItem(iCmd int, w, h float32, stretch bool) {
	if len(f.ctx.viewStack) == 0 {
		panic("imui: widget declared outside a view")
	}
	f.ctx.items = append(f.ctx.items, item{iCmd: iCmd, nCmds: 1, w: w, h: h, stretch: stretch})
}
