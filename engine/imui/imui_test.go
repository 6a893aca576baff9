package imui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/hazel/engine/colors"
)

// fakeRenderer measures every rune as 8x16 and records what it draws.
type fakeRenderer struct {
	quads [][4]float32 // x, y, w, h of the top-left corner
	texts map[string][2]float32
}

func newFakeRenderer() *fakeRenderer { return &fakeRenderer{texts: map[string][2]float32{}} }

func (r *fakeRenderer) DrawQuad(cx, cy, w, h float32, _ colors.Color, _ float32) {
	r.quads = append(r.quads, [4]float32{cx - w/2, cy - h/2, w, h})
}

func (r *fakeRenderer) DrawText(x, y float32, s string, _ colors.Color) {
	r.texts[s] = [2]float32{x, y}
}

func (r *fakeRenderer) Measure(s string) (float32, float32) {
	return float32(len([]rune(s))) * 8, 16
}

func newTestCtx() (*Ctx, *fakeRenderer) {
	r := newFakeRenderer()
	return New(r.Measure), r
}

func TestPanelStacksWidgets(t *testing.T) {
	ctx, r := newTestCtx()
	pos := [2]float32{10, 20}

	f := ctx.NewFrame(Input{})
	f.BeginPanel(1, "Debug", &pos)
	f.Label("ab")
	f.EndPanel()
	f.Render(r)

	// background covers padding, title, gap and label
	require.NotEmpty(t, r.quads)
	assert.Equal(t, [4]float32{10, 20, 64, 54}, r.quads[0])
	// title bar stretches across the panel
	assert.Equal(t, [4]float32{16, 26, 52, 22}, r.quads[1])
	assert.Equal(t, [2]float32{22, 29}, r.texts["Debug"])
	assert.Equal(t, [2]float32{16, 52}, r.texts["ab"])
}

func TestNestedViewIsPlacedByParent(t *testing.T) {
	ctx, r := newTestCtx()

	f := ctx.NewFrame(Input{})
	f.BeginView(Props{Axis: Vertical, Gap: 2, BoundsX: 100, BoundsY: 50})
	f.Label("top")
	f.BeginView(Props{Axis: Horizontal, Gap: 5})
	f.Label("a")
	f.Label("b")
	f.EndView()
	f.EndView()
	f.Render(r)

	assert.Equal(t, [2]float32{100, 50}, r.texts["top"])
	assert.Equal(t, [2]float32{100, 68}, r.texts["a"])
	assert.Equal(t, [2]float32{113, 68}, r.texts["b"])
}

func TestMainAlignCenter(t *testing.T) {
	ctx, r := newTestCtx()

	f := ctx.NewFrame(Input{})
	f.BeginView(Props{Axis: Horizontal, MainAlign: Center, CrossAlign: End, Sizing: Px(100, 40)})
	f.Label("abcd")
	f.EndView()
	f.Render(r)

	assert.Equal(t, [2]float32{34, 24}, r.texts["abcd"])
}

func TestButtonClickUsesLastLayout(t *testing.T) {
	ctx, r := newTestCtx()
	pos := [2]float32{0, 0}
	frame := func(in Input) bool {
		f := ctx.NewFrame(in)
		f.BeginPanel(1, "T", &pos)
		clicked := f.Button(2, "Go")
		f.EndPanel()
		f.Render(r)
		return clicked
	}

	// the button has no layout yet
	assert.False(t, frame(Input{MouseX: 10, MouseY: 40, MousePressed: true, MouseReleased: true}))
	assert.False(t, frame(Input{MouseX: 10, MouseY: 40, MousePressed: true, MouseDown: true}))
	assert.True(t, frame(Input{MouseX: 10, MouseY: 40, MouseReleased: true}))

	// released outside the button
	frame(Input{MouseX: 10, MouseY: 40, MousePressed: true, MouseDown: true})
	assert.False(t, frame(Input{MouseX: 500, MouseY: 500, MouseReleased: true}))
}

func TestCheckboxToggles(t *testing.T) {
	ctx, r := newTestCtx()
	pos := [2]float32{0, 0}
	vsync := true
	var hovered bool
	frame := func(in Input) bool {
		f := ctx.NewFrame(in)
		f.BeginPanel(1, "T", &pos)
		changed := f.Checkbox(2, "vsync", &vsync)
		f.EndPanel()
		hovered = f.Hovered()
		f.Render(r)
		return changed
	}

	assert.False(t, frame(Input{}))
	assert.True(t, vsync)

	click := Input{MouseX: 10, MouseY: 40, MousePressed: true, MouseReleased: true}
	assert.True(t, frame(click))
	assert.False(t, vsync)
	assert.True(t, hovered)

	assert.True(t, frame(click))
	assert.True(t, vsync)
}

func TestPanelDrag(t *testing.T) {
	ctx, r := newTestCtx()
	pos := [2]float32{0, 0}
	frame := func(in Input) bool {
		f := ctx.NewFrame(in)
		moved := f.BeginPanel(1, "T", &pos)
		f.EndPanel()
		f.Render(r)
		return moved
	}

	assert.False(t, frame(Input{MouseX: 10, MouseY: 10}))
	assert.False(t, frame(Input{MouseX: 10, MouseY: 10, MousePressed: true, MouseDown: true}))
	assert.True(t, frame(Input{MouseX: 30, MouseY: 25, MouseDown: true}))
	assert.Equal(t, [2]float32{20, 15}, pos)

	assert.False(t, frame(Input{MouseX: 60, MouseY: 60, MouseReleased: true}))
	assert.False(t, frame(Input{MouseX: 90, MouseY: 90}))
	assert.Equal(t, [2]float32{20, 15}, pos)
}

func TestFrameIsRenderedOnce(t *testing.T) {
	ctx, r := newTestCtx()

	f := ctx.NewFrame(Input{})
	f.Render(r)
	assert.PanicsWithValue(t, "imui: frame rendered twice", func() { f.Render(r) })

	stale := ctx.NewFrame(Input{})
	ctx.NewFrame(Input{})
	assert.PanicsWithValue(t, "imui: stale frame", func() { stale.Render(r) })
	assert.Equal(t, uint64(3), ctx.Frames())
}

func TestUnbalancedViewsPanic(t *testing.T) {
	ctx, r := newTestCtx()

	f := ctx.NewFrame(Input{})
	assert.Panics(t, func() { f.EndView() })
	assert.Panics(t, func() { f.Label("loose") })

	f.BeginView(Props{})
	assert.PanicsWithValue(t, "imui: BeginView without EndView", func() { f.Render(r) })
}

func TestPressFrameDoesNotDrag(t *testing.T) {
	ctx, r := newTestCtx()
	pos := [2]float32{0, 0}
	frame := func(in Input) {
		f := ctx.NewFrame(in)
		f.BeginPanel(1, "T", &pos)
		f.EndPanel()
		f.Render(r)
	}

	frame(Input{})
	rect, ok := ctx.Rect(1)
	require.True(t, ok)

	// the pointer jumps onto the title and presses in the same frame
	frame(Input{MouseX: rect[0] + 4, MouseY: rect[1] + 4, MousePressed: true, MouseDown: true})
	assert.Equal(t, [2]float32{0, 0}, pos)

	_, ok = ctx.Rect(99)
	assert.False(t, ok)
}

func TestLabelfTextLivesUntilRender(t *testing.T) {
	ctx, r := newTestCtx()
	f := ctx.NewFrame(Input{})
	f.BeginView(Props{})
	for i := range 50 {
		f.Labelf("line %d of %.1f", i, 50.0)
	}
	f.EndView()
	f.Render(r)

	assert.Contains(t, r.texts, "line 0 of 50.0")
	assert.Contains(t, r.texts, "line 49 of 50.0")
}
