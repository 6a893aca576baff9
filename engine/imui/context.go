// Package imui is a small immediate-mode UI. Widgets are declared into a
// Frame every tick; the Frame lays them out, answers interaction from the
// previous layout and is drawn once through a Renderer.
package imui

import (
	"github.com/hubastard/hazel/engine/colors"
	"github.com/hubastard/hazel/engine/gfx/renderer2d"
	"github.com/hubastard/hazel/engine/scratch"
	"github.com/hubastard/hazel/engine/text"
)

// Renderer draws the resolved commands of a Frame in pixel space, Y down.
type Renderer interface {
	// Draws a solid quad centered at (cx, cy) with w,h and color RGBA [0..1]
	DrawQuad(cx, cy, w, h float32, color colors.Color, rotation float32)
	// Draws text top-left at (x,y)
	DrawText(x, y float32, s string, color colors.Color)
	// Measures text (w,h)
	Measure(s string) (w, h float32)
}

// Painter renders through a renderer2d scene with one font.
type Painter struct {
	R2D  *renderer2d.Renderer2D
	Font *text.Font
}

func (p Painter) DrawQuad(cx, cy, w, h float32, color colors.Color, rotation float32) {
	p.R2D.DrawQuad(cx, cy, w, h, color, rotation)
}

func (p Painter) DrawText(x, y float32, s string, color colors.Color) {
	text.DrawText(p.R2D, p.Font, x, y, s, color)
}

func (p Painter) Measure(s string) (float32, float32) { return text.MeasureText(p.Font, s) }

// Input is the pointer state for one frame. Pressed and Released are edges
// since the previous frame.
type Input struct {
	MouseX, MouseY float32
	MouseDown      bool
	MousePressed   bool
	MouseReleased  bool
}

// ===== Immediate-UI context =====

// Ctx keeps what outlives a frame: widget state and reusable buffers.
type Ctx struct {
	measure func(s string) (w, h float32)
	style   Style

	// Stable widget state (hot/active/last rect) keyed by widget id
	state map[int]widgetState

	viewStack []viewScope
	cmds      []cmd
	items     []item
	text      *scratch.Buffer

	live       *Frame
	lastMouseX float32
	lastMouseY float32
	frames     uint64
}

// Style holds the colours and metrics widgets are drawn with.
type Style struct {
	PanelBg   colors.Color
	TitleBg   colors.Color
	Text      colors.Color
	Button    colors.Color
	Check     colors.Color
	Separator colors.Color
	Padding   float32
	Gap       float32
	BoxSize   float32
}

func DefaultStyle() Style {
	return Style{
		PanelBg:   colors.Color{0.06, 0.06, 0.06, 0.94},
		TitleBg:   colors.Color{0.16, 0.29, 0.48, 1},
		Text:      colors.White,
		Button:    colors.Color{0.26, 0.59, 0.98, 0.4},
		Check:     colors.Color{0.26, 0.59, 0.98, 1},
		Separator: colors.Color{0.43, 0.43, 0.5, 0.5},
		Padding:   6,
		Gap:       4,
		BoxSize:   14,
	}
}

// New creates a context measuring text with measure, typically a
// Painter's Measure.
func New(measure func(s string) (w, h float32)) *Ctx {
	return &Ctx{
		measure:   measure,
		style:     DefaultStyle(),
		state:     make(map[int]widgetState, 64),
		viewStack: make([]viewScope, 0, 8),
		cmds:      make([]cmd, 0, 128),
		items:     make([]item, 0, 64),
		text:      scratch.New(4096),
	}
}

func (ctx *Ctx) Style() *Style { return &ctx.style }

// Rect returns the x, y, w, h widget id was laid out at in the last frame.
func (ctx *Ctx) Rect(id int) ([4]float32, bool) {
	st, ok := ctx.state[id]
	return st.rect, ok && st.seen
}

// Frames reports how many frames were started.
func (ctx *Ctx) Frames() uint64 { return ctx.frames }

// NewFrame starts declaring widgets for one frame. Any frame started before
// and not yet rendered becomes stale.
func (ctx *Ctx) NewFrame(in Input) *Frame {
	f := &Frame{ctx: ctx, in: in}
	if ctx.frames > 0 {
		f.dx = in.MouseX - ctx.lastMouseX
		f.dy = in.MouseY - ctx.lastMouseY
	}
	ctx.lastMouseX, ctx.lastMouseY = in.MouseX, in.MouseY
	ctx.frames++

	ctx.cmds = ctx.cmds[:0]
	ctx.viewStack = ctx.viewStack[:0]
	ctx.items = ctx.items[:0]
	ctx.text.Reset()
	ctx.live = f
	return f
}

// Frame is the per-frame UI context. It is declared into once and rendered
// exactly once.
type Frame struct {
	ctx      *Ctx
	in       Input
	dx, dy   float32
	hovered  bool
	rendered bool
}

// Input returns the pointer state the frame was started with.
func (f *Frame) Input() Input { return f.in }

// Hovered reports whether the pointer is over an interactive widget.
func (f *Frame) Hovered() bool { return f.hovered }

// Render draws every command of the frame. It panics when called twice or
// on a stale frame.
func (f *Frame) Render(r Renderer) {
	if f.rendered {
		panic("imui: frame rendered twice")
	}
	if f.ctx.live != f {
		panic("imui: stale frame")
	}
	if len(f.ctx.viewStack) != 0 {
		panic("imui: BeginView without EndView")
	}
	f.rendered = true
	f.ctx.live = nil
	for i := range f.ctx.cmds {
		f.draw(r, &f.ctx.cmds[i])
	}
}

// Commands reports how many draw commands were recorded.
func (f *Frame) Commands() int { return len(f.ctx.cmds) }
