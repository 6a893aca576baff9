package renderer2d_test

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/hazel/engine/colors"
	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/gfx/gfxtest"
	"github.com/hubastard/hazel/engine/gfx/renderer2d"
	"github.com/hubastard/hazel/engine/scene"
)

var identity = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

type fixture struct {
	dev     *gfxtest.Device
	surface *gfx.Surface
	rd      *renderer2d.Renderer2D
}

func newFixture(t *testing.T, maxQuads int) *fixture {
	t.Helper()
	dev := gfxtest.NewDevice()
	s, err := gfx.NewSurface(dev, gfx.SurfaceConfig{Width: 800, Height: 600, ScaleFactor: 1, PresentMode: gfx.PresentModeFor(true)})
	require.NoError(t, err)
	rd, err := renderer2d.New(dev, s.Format(), maxQuads)
	require.NoError(t, err)
	return &fixture{dev: dev, surface: s, rd: rd}
}

// frame runs draw inside one frame and returns its submitted commands.
func (fx *fixture) frame(t *testing.T, draw func(f *gfx.Frame)) []gfx.Command {
	t.Helper()
	f, err := fx.surface.BeginFrame()
	require.NoError(t, err)
	draw(f)
	require.NoError(t, fx.surface.EndFrame(f))
	return fx.dev.Submitted[len(fx.dev.Submitted)-1]
}

func ofKind(cmds []gfx.Command, kind gfx.CommandKind) []gfx.Command {
	var out []gfx.Command
	for _, c := range cmds {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func vertexPages(dev *gfxtest.Device) []*gfxtest.Buffer {
	var out []*gfxtest.Buffer
	for _, b := range dev.Buffers {
		if strings.HasPrefix(b.Label, "renderer2d.vertices") {
			out = append(out, b)
		}
	}
	return out
}

// vertex decodes position and uv of vertex i at byte offset off.
func vertex(b *gfxtest.Buffer, off uint64, i int) (pos, uv [2]float32) {
	base := int(off) + i*32
	f := func(k int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b.Data[base+k*4:]))
	}
	return [2]float32{f(0), f(1)}, [2]float32{f(2), f(3)}
}

func TestNewBuildsPipelineAndIndices(t *testing.T) {
	fx := newFixture(t, 2)
	require.Len(t, fx.dev.Pipelines, 1)
	desc := fx.dev.Pipelines[0].Desc
	assert.Equal(t, gputypes.CullModeNone, desc.Primitive.CullMode)
	require.NotNil(t, desc.Fragment.Targets[0].Blend)
	assert.Equal(t, gfx.DefaultFormat, desc.Fragment.Targets[0].Format)

	require.Len(t, fx.dev.Textures, 1)
	assert.Equal(t, []byte{255, 255, 255, 255}, fx.dev.Textures[0].Desc.Pixels)

	var ib *gfxtest.Buffer
	for _, b := range fx.dev.Buffers {
		if b.Label == "renderer2d.indices" {
			ib = b
		}
	}
	require.NotNil(t, ib)
	got := make([]uint16, 12)
	for i := range got {
		got[i] = binary.LittleEndian.Uint16(ib.Data[i*2:])
	}
	assert.Equal(t, []uint16{0, 2, 1, 1, 2, 3, 4, 6, 5, 5, 6, 7}, got)
}

func TestNewRejectsOversizedBatch(t *testing.T) {
	_, err := renderer2d.New(gfxtest.NewDevice(), gfx.DefaultFormat, renderer2d.MaxQuads+1)
	assert.Error(t, err)
}

func TestQuadsShareOneDrawCall(t *testing.T) {
	fx := newFixture(t, 0)
	cmds := fx.frame(t, func(f *gfx.Frame) {
		fx.rd.BeginScene(f, identity)
		fx.rd.DrawQuad(0, 0, 0.5, 0.5, colors.Red, 0)
		fx.rd.DrawQuad(0.5, 0, 0.5, 0.5, colors.Green, 0.3)
		fx.rd.DrawQuad(0, 0.5, 0.5, 0.5, colors.Blue, 0)
		require.NoError(t, fx.rd.EndScene())
	})

	assert.Equal(t, []gfx.CommandKind{
		gfx.CommandClear,
		gfx.CommandSetPipeline, gfx.CommandSetVertexBuffer, gfx.CommandSetIndexBuffer,
		gfx.CommandSetTexture, gfx.CommandDrawIndexed,
	}, gfxtest.Kinds(cmds))
	draw := ofKind(cmds, gfx.CommandDrawIndexed)[0]
	assert.Equal(t, uint32(18), draw.Count)
	assert.Equal(t, fx.rd.White(), ofKind(cmds, gfx.CommandSetTexture)[0].Texture)

	st := fx.rd.Stats()
	assert.Equal(t, 1, st.DrawCalls)
	assert.Equal(t, 3, st.QuadCount)
	assert.Equal(t, 12, st.TotalVertexCount())
	assert.Equal(t, 18, st.TotalIndexCount())
}

func TestTextureChangeFlushes(t *testing.T) {
	fx := newFixture(t, 0)
	tex, err := fx.dev.CreateTexture(gfx.TextureDescriptor{Label: "tex", Width: 1, Height: 1})
	require.NoError(t, err)

	cmds := fx.frame(t, func(f *gfx.Frame) {
		fx.rd.BeginScene(f, identity)
		fx.rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
		fx.rd.DrawTexturedQuad(0, 0, 1, 1, tex, colors.White, 0)
		fx.rd.DrawTexturedQuad(0, 0, 1, 1, tex, colors.White, 0)
		fx.rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
		require.NoError(t, fx.rd.EndScene())
	})

	binds := ofKind(cmds, gfx.CommandSetTexture)
	require.Len(t, binds, 3)
	assert.Equal(t, fx.rd.White(), binds[0].Texture)
	assert.Equal(t, tex, binds[1].Texture)
	assert.Equal(t, fx.rd.White(), binds[2].Texture)

	draws := ofKind(cmds, gfx.CommandDrawIndexed)
	assert.Equal(t, []uint32{6, 12, 6}, []uint32{draws[0].Count, draws[1].Count, draws[2].Count})
	assert.Equal(t, 3, fx.rd.Stats().TextureCount)
}

func TestScenesInOneFrameUseDisjointRegions(t *testing.T) {
	fx := newFixture(t, 0)
	cmds := fx.frame(t, func(f *gfx.Frame) {
		for i := 0; i < 2; i++ {
			fx.rd.BeginScene(f, identity)
			fx.rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
			fx.rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
			require.NoError(t, fx.rd.EndScene())
		}
	})

	binds := ofKind(cmds, gfx.CommandSetVertexBuffer)
	require.Len(t, binds, 2)
	assert.Same(t, binds[0].Buffer, binds[1].Buffer)
	assert.Equal(t, uint64(0), binds[0].Offset)
	assert.Equal(t, uint64(2*4*32), binds[1].Offset)
	assert.Equal(t, 2, fx.rd.Stats().DrawCalls)

	// the next frame starts over at the beginning of the first page
	cmds = fx.frame(t, func(f *gfx.Frame) {
		fx.rd.BeginScene(f, identity)
		fx.rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
		require.NoError(t, fx.rd.EndScene())
	})
	assert.Equal(t, uint64(0), ofKind(cmds, gfx.CommandSetVertexBuffer)[0].Offset)
	assert.Equal(t, 1, fx.rd.Stats().DrawCalls)
	assert.Len(t, vertexPages(fx.dev), 1)
}

func TestFullBatchSpillsIntoNewPage(t *testing.T) {
	fx := newFixture(t, 2)
	cmds := fx.frame(t, func(f *gfx.Frame) {
		fx.rd.BeginScene(f, identity)
		for i := 0; i < 5; i++ {
			fx.rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
		}
		require.NoError(t, fx.rd.EndScene())
	})

	draws := ofKind(cmds, gfx.CommandDrawIndexed)
	require.Len(t, draws, 3)
	assert.Equal(t, uint32(12), draws[0].Count)
	assert.Equal(t, uint32(6), draws[2].Count)
	assert.Len(t, vertexPages(fx.dev), 3)
	assert.Equal(t, 5, fx.rd.Stats().QuadCount)
}

func TestVerticesAreInClipSpace(t *testing.T) {
	fx := newFixture(t, 0)
	fx.frame(t, func(f *gfx.Frame) {
		fx.rd.BeginScene(f, scene.PixelVP(800, 600))
		fx.rd.DrawRect(0, 0, 400, 300, colors.White)
		require.NoError(t, fx.rd.EndScene())
	})

	page := vertexPages(fx.dev)[0]
	pos, uv := vertex(page, 0, 0)
	assert.InDelta(t, -1, pos[0], 1e-6)
	assert.InDelta(t, 1, pos[1], 1e-6)
	assert.Equal(t, [2]float32{0, 0}, uv)

	pos, uv = vertex(page, 0, 3)
	assert.InDelta(t, 0, pos[0], 1e-6)
	assert.InDelta(t, 0, pos[1], 1e-6)
	assert.Equal(t, [2]float32{1, 1}, uv)
}

func TestYUpCameraKeepsTexturesUpright(t *testing.T) {
	fx := newFixture(t, 0)
	fx.frame(t, func(f *gfx.Frame) {
		fx.rd.BeginScene(f, identity)
		fx.rd.DrawQuad(0, 0, 2, 2, colors.White, 0)
		require.NoError(t, fx.rd.EndScene())
	})

	// the first corner is the lowest one on screen, it samples the bottom row
	pos, uv := vertex(vertexPages(fx.dev)[0], 0, 0)
	assert.Equal(t, [2]float32{-1, -1}, pos)
	assert.Equal(t, [2]float32{0, 1}, uv)
}

func TestDrawOutsideScenePanics(t *testing.T) {
	fx := newFixture(t, 0)
	assert.Panics(t, func() { fx.rd.DrawQuad(0, 0, 1, 1, colors.White, 0) })
	assert.ErrorIs(t, fx.rd.EndScene(), renderer2d.ErrNoScene)
}

func TestSubTextureFromGrid(t *testing.T) {
	dev := gfxtest.NewDevice()
	tex, err := dev.CreateTexture(gfx.TextureDescriptor{Label: "atlas", Width: 64, Height: 32})
	require.NoError(t, err)

	sub := renderer2d.FromGrid(tex, 1, 0, 16, 16)
	assert.Equal(t, float32(0.25), sub.U0)
	assert.Equal(t, float32(0), sub.V0)
	assert.Equal(t, float32(0.5), sub.U1)
	assert.Equal(t, float32(0.5), sub.V1)
}

func TestReleaseFreesResources(t *testing.T) {
	fx := newFixture(t, 0)
	fx.frame(t, func(f *gfx.Frame) {
		fx.rd.BeginScene(f, identity)
		fx.rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
		require.NoError(t, fx.rd.EndScene())
	})
	fx.rd.Release()

	for _, b := range fx.dev.Buffers {
		assert.True(t, b.Released, b.Label)
	}
	assert.True(t, fx.dev.Textures[0].Released)
	assert.True(t, fx.dev.Pipelines[0].Released)
}
