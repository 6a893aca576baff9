package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/hazel/engine/colors"
	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/gfx/gfxtest"
	"github.com/hubastard/hazel/engine/gfx/renderer2d"
	"github.com/hubastard/hazel/engine/scene"
)

func loadDefault(t *testing.T) (*Font, *gfxtest.Device) {
	t.Helper()
	dev := gfxtest.NewDevice()
	f, err := LoadDefault(dev, 16)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f, dev
}

func TestLoadDefaultUploadsAtlas(t *testing.T) {
	f, dev := loadDefault(t)

	require.Len(t, dev.Textures, 1)
	desc := dev.Textures[0].Desc
	assert.Equal(t, "font.goregular", desc.Label)
	assert.Equal(t, f.AtlasW, desc.Width)
	assert.Len(t, desc.Pixels, f.AtlasW*f.AtlasH*4)

	a, ok := f.Glyphs['A']
	require.True(t, ok)
	assert.Positive(t, a.W)
	assert.Positive(t, a.H)
	assert.Positive(t, a.Advance)
	assert.Less(t, a.U0, a.U1)
	assert.Less(t, a.V0, a.V1)

	// some coverage was rasterised inside the glyph's cell
	x0, y0 := int(a.U0*float32(f.AtlasW)), int(a.V0*float32(f.AtlasH))
	var alpha int
	for y := y0; y < y0+a.H; y++ {
		for x := x0; x < x0+a.W; x++ {
			alpha += int(desc.Pixels[(y*f.AtlasW+x)*4+3])
		}
	}
	assert.Positive(t, alpha)

	sp := f.Glyphs[' ']
	assert.Zero(t, sp.W)
	assert.Positive(t, sp.Advance)
	assert.Positive(t, LineHeight(f))
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := Load(gfxtest.NewDevice(), "junk", []byte("not a font"), 16, Latin1())
	assert.Error(t, err)
}

func TestCloseReleasesTexture(t *testing.T) {
	dev := gfxtest.NewDevice()
	f, err := LoadMono(dev, 12)
	require.NoError(t, err)
	f.Close()
	assert.True(t, dev.Textures[0].Released)
	assert.Nil(t, f.Face)
	f.Close()
}

func TestMeasureText(t *testing.T) {
	f, _ := loadDefault(t)

	w, h := MeasureText(f, "")
	assert.Zero(t, w)
	assert.Equal(t, LineHeight(f), h)

	var want float32
	prev := rune(-1)
	for _, r := range "1234" {
		want += f.kern(prev, r) + f.Glyphs[r].Advance
		prev = r
	}
	w, _ = MeasureText(f, "1234")
	assert.Equal(t, want, w)

	w2, h2 := MeasureText(f, "1234\n12")
	assert.Equal(t, w, w2)
	assert.Equal(t, 2*LineHeight(f), h2)

	// runes outside the atlas advance like a space
	w, _ = MeasureText(f, "世")
	assert.Equal(t, f.Glyphs[' '].Advance, w)
}

func TestPackGrowsAtlas(t *testing.T) {
	glyphs := make([]measured, 64)
	for i := range glyphs {
		glyphs[i] = measured{r: rune('A' + i), w: 30, h: 30}
	}
	size, pos, err := pack(glyphs, 64)
	require.NoError(t, err)
	assert.Equal(t, 512, size)
	assert.Len(t, pos, 64)

	// no two glyphs overlap
	for a, pa := range pos {
		for b, pb := range pos {
			if a == b {
				continue
			}
			overlapX := pa.X < pb.X+30 && pb.X < pa.X+30
			overlapY := pa.Y < pb.Y+30 && pb.Y < pa.Y+30
			assert.False(t, overlapX && overlapY, "%c overlaps %c", a, b)
		}
	}

	_, _, err = pack([]measured{{r: 'x', w: MaxAtlasSize, h: 1}}, 64)
	assert.ErrorIs(t, err, ErrAtlasTooLarge)
}

func TestDrawTextEmitsOneQuadPerVisibleGlyph(t *testing.T) {
	dev := gfxtest.NewDevice()
	f, err := LoadDefault(dev, 16)
	require.NoError(t, err)
	defer f.Close()

	s, err := gfx.NewSurface(dev, gfx.SurfaceConfig{Width: 320, Height: 200, ScaleFactor: 1, PresentMode: gfx.PresentModeFor(true)})
	require.NoError(t, err)
	r2d, err := renderer2d.New(dev, s.Format(), 0)
	require.NoError(t, err)

	fr, err := s.BeginFrame()
	require.NoError(t, err)
	r2d.BeginScene(fr, scene.PixelVP(320, 200))
	DrawText(r2d, f, 10, 10, "Hi there\nok", colors.White)
	require.NoError(t, r2d.EndScene())
	require.NoError(t, s.EndFrame(fr))

	st := r2d.Stats()
	assert.Equal(t, 9, st.QuadCount)
	assert.Equal(t, 1, st.DrawCalls)

	binds := 0
	for _, c := range dev.Submitted[0] {
		if c.Kind == gfx.CommandSetTexture {
			assert.Equal(t, f.Texture, c.Texture)
			binds++
		}
	}
	assert.Equal(t, 1, binds)
}
