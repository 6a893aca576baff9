// Package renderer2d batches coloured and textured quads into as few draw
// calls as the bound textures allow.
package renderer2d

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/gogpu/gputypes"

	"github.com/hubastard/hazel/engine/assets"
	"github.com/hubastard/hazel/engine/colors"
	"github.com/hubastard/hazel/engine/gfx"
)

const (
	vertsPerQuad = 4
	indsPerQuad  = 6

	// DefaultMaxQuads is the batch size used when New is given zero.
	DefaultMaxQuads = 4096
	// MaxQuads keeps every batch addressable with 16-bit indices.
	MaxQuads = 65536 / vertsPerQuad
)

// ErrNoScene is returned when quads are drawn outside BeginScene/EndScene.
var ErrNoScene = errors.New("renderer2d: no scene in progress")

// quadVertex: pos2 + uv2 + color4, positions already in clip space.
type quadVertex struct {
	Position [2]float32
	UV       [2]float32
	Color    [4]float32
}

var quadLayout = gputypes.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(quadVertex{})),
	StepMode:    gputypes.VertexStepModeVertex,
	Attributes: []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},     // pos
		{Format: gputypes.VertexFormatFloat32x2, Offset: 2 * 4, ShaderLocation: 1}, // uv
		{Format: gputypes.VertexFormatFloat32x4, Offset: 4 * 4, ShaderLocation: 2}, // color
	},
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

// Renderer2D streams quad vertices into pages of dynamic vertex buffers.
// A page region is written once per frame, so every batch recorded into a
// frame keeps its data until the frame is submitted.
type Renderer2D struct {
	dev     gfx.Device
	pipe    gfx.RenderPipeline
	white   gfx.Texture // 1x1 white, bound for untextured quads
	indices gfx.Buffer

	pages    []gfx.Buffer
	page     int
	pageUsed uint64
	pageSize uint64
	seq      uint64

	frame    *gfx.Frame
	vp       [16]float32
	flipV    bool
	tex      gfx.Texture
	verts    []quadVertex
	maxQuads int

	stats Statistics
	err   error
}

// New creates the renderer and its pipeline for targets of the given format.
func New(dev gfx.Device, format gputypes.TextureFormat, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = DefaultMaxQuads
	}
	if maxQuads > MaxQuads {
		return nil, fmt.Errorf("renderer2d: %d quads per batch exceeds %d", maxQuads, MaxQuads)
	}

	sh, err := assets.CompileShader(assets.QuadShader)
	if err != nil {
		return nil, err
	}
	blend := gputypes.BlendStateAlpha()
	pipe, err := gfx.NewRenderPipeline(dev, gfx.PipelineConfig{
		Label:   "renderer2d",
		Shader:  sh,
		Layouts: []gputypes.VertexBufferLayout{quadLayout},
		Format:  format,
		Blend:   &blend,
		NoCull:  true,
	})
	if err != nil {
		return nil, err
	}

	// build 1x1 white texture
	white, err := dev.CreateTexture(gfx.TextureDescriptor{
		Label:  "renderer2d.white",
		Width:  1,
		Height: 1,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Filter: gputypes.FilterModeNearest,
		Pixels: []byte{255, 255, 255, 255},
	})
	if err != nil {
		pipe.Release()
		return nil, fmt.Errorf("renderer2d: white texture: %w", err)
	}

	// Quads share one index pattern, so the index buffer never changes.
	inds := make([]uint16, 0, maxQuads*indsPerQuad)
	for q := 0; q < maxQuads; q++ {
		v := uint16(q * vertsPerQuad)
		inds = append(inds, v+0, v+2, v+1, v+1, v+2, v+3)
	}
	ib, err := gfx.NewIndexBuffer(dev, "renderer2d.indices", inds)
	if err != nil {
		white.Release()
		pipe.Release()
		return nil, err
	}

	return &Renderer2D{
		dev:      dev,
		pipe:     pipe,
		white:    white,
		indices:  ib,
		pageSize: uint64(maxQuads*vertsPerQuad) * quadLayout.ArrayStride,
		verts:    make([]quadVertex, 0, maxQuads*vertsPerQuad),
		maxQuads: maxQuads,
	}, nil
}

// White is the texture bound for untextured quads.
func (rd *Renderer2D) White() gfx.Texture { return rd.white }

// BeginScene starts recording quads into f, transformed by the column-major
// view-projection vp. Statistics accumulate over every scene of a frame.
func (rd *Renderer2D) BeginScene(f *gfx.Frame, vp [16]float32) {
	if rd.frame != nil {
		panic("renderer2d: BeginScene called twice without EndScene")
	}
	if f.Seq() != rd.seq {
		rd.seq = f.Seq()
		rd.page, rd.pageUsed = 0, 0
		rd.stats = Statistics{}
	}
	rd.frame = f
	rd.vp = vp
	// Y-up cameras need V flipped so textures stay upright.
	rd.flipV = vp[0]*vp[5]-vp[4]*vp[1] > 0
	rd.resetBatch()
}

// EndScene flushes the pending batch and reports the first error met while
// streaming this scene.
func (rd *Renderer2D) EndScene() error {
	if rd.frame == nil {
		return ErrNoScene
	}
	rd.flush()
	rd.frame = nil
	err := rd.err
	rd.err = nil
	return err
}

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// DrawQuad draws a solid quad centred on (x, y).
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.drawQuadInternal(x, y, w, h, color, rotationRad, rd.white, 0, 0, 1, 1)
}

// DrawRect draws an axis aligned solid quad from its top-left corner, for
// pixel-space scenes.
func (rd *Renderer2D) DrawRect(x, y, w, h float32, color colors.Color) {
	rd.drawQuadInternal(x+w*0.5, y+h*0.5, w, h, color, 0, rd.white, 0, 0, 1, 1)
}

// Draw textured quad with UVs (tint color)
func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex gfx.Texture, tint colors.Color, rotationRad float32) {
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, tex, 0, 0, 1, 1)
}

// Draw textured sub-rect (UV rect: u0,v0 -> u1,v1)
func (rd *Renderer2D) DrawTexturedQuadUV(x, y, w, h float32, tex gfx.Texture, tint colors.Color, rotationRad float32, u0, v0, u1, v1 float32) {
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, tex, u0, v0, u1, v1)
}

// DrawSubTexQuad draws a quad using a SubTexture2D (tint + rotation optional).
func (rd *Renderer2D) DrawSubTexQuad(x, y, w, h float32, sub SubTexture2D, tint colors.Color, rotationRad float32) {
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, sub.Texture, sub.U0, sub.V0, sub.U1, sub.V1)
}

// Release frees every GPU resource owned by the renderer.
func (rd *Renderer2D) Release() {
	for _, p := range rd.pages {
		p.Release()
	}
	rd.pages = nil
	rd.indices.Release()
	rd.white.Release()
	rd.pipe.Release()
}

// --- internals ---

func (rd *Renderer2D) drawQuadInternal(x, y, w, h float32, color colors.Color, rotationRad float32, tex gfx.Texture, u0, v0, u1, v1 float32) {
	if rd.frame == nil {
		panic(ErrNoScene)
	}
	if tex == nil {
		tex = rd.white
	}
	if tex != rd.tex || len(rd.verts) >= rd.maxQuads*vertsPerQuad {
		rd.flush()
		rd.tex = tex
	}
	if rd.flipV {
		v0, v1 = v1, v0
	}

	halfW := w * 0.5
	halfH := h * 0.5

	// corners (TL, TR, BL, BR) with UVs. Positive Y goes down so top is -halfH.
	corners := [4][4]float32{
		{-halfW, -halfH, u0, v0},
		{halfW, -halfH, u1, v0},
		{-halfW, halfH, u0, v1},
		{halfW, halfH, u1, v1},
	}
	c, s := float32(1), float32(0)
	if rotationRad != 0 {
		c, s = math32.Cos(rotationRad), math32.Sin(rotationRad)
	}
	m := &rd.vp
	for _, p := range corners {
		rx := p[0]*c - p[1]*s + x
		ry := p[0]*s + p[1]*c + y
		rd.verts = append(rd.verts, quadVertex{
			Position: [2]float32{m[0]*rx + m[4]*ry + m[12], m[1]*rx + m[5]*ry + m[13]},
			UV:       [2]float32{p[2], p[3]},
			Color:    [4]float32(color),
		})
	}
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	defer rd.resetBatch()
	if len(rd.verts) == 0 {
		return
	}
	data := gfx.Bytes(rd.verts)
	buf, offset, err := rd.reserve(uint64(len(data)))
	if err == nil {
		err = rd.dev.WriteBuffer(buf, offset, data)
	}
	if err != nil {
		if rd.err == nil {
			rd.err = fmt.Errorf("renderer2d: stream %d quads: %w", len(rd.verts)/vertsPerQuad, err)
		}
		return
	}

	f := rd.frame
	f.SetPipeline(rd.pipe)
	f.SetVertexBuffer(0, buf, offset)
	f.SetIndexBuffer(rd.indices, gputypes.IndexFormatUint16, 0)
	f.SetTexture(0, rd.tex)
	f.DrawIndexed(uint32(len(rd.verts)/vertsPerQuad*indsPerQuad), 0, 0)
	rd.stats.DrawCalls++
	rd.stats.TextureCount++
}

// reserve hands out n bytes of vertex storage not yet used this frame.
func (rd *Renderer2D) reserve(n uint64) (gfx.Buffer, uint64, error) {
	if rd.page < len(rd.pages) && rd.pageUsed+n > rd.pageSize {
		rd.page++
		rd.pageUsed = 0
	}
	if rd.page == len(rd.pages) {
		b, err := rd.dev.CreateBuffer(gfx.BufferDescriptor{
			Label: fmt.Sprintf("renderer2d.vertices.%d", rd.page),
			Size:  rd.pageSize,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, 0, err
		}
		rd.pages = append(rd.pages, b)
		rd.pageUsed = 0
	}
	offset := rd.pageUsed
	rd.pageUsed += n
	return rd.pages[rd.page], offset, nil
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.tex = rd.white
}
