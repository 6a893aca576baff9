// Package text rasterises TrueType fonts into glyph atlases and draws
// strings through renderer2d.
package text

import (
	"errors"
	"fmt"
	"image"
	"io/fs"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hubastard/hazel/engine/gfx"
)

// ErrAtlasTooLarge is returned when the glyphs do not fit a MaxAtlasSize atlas.
var ErrAtlasTooLarge = errors.New("text: font atlas too large")

const (
	// MaxAtlasSize bounds the side of a glyph atlas.
	MaxAtlasSize = 4096
	padding      = 2
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Font is a face rasterised at one pixel size into a white glyph atlas
// whose alpha carries the coverage.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Texture                  gfx.Texture
	AtlasW, AtlasH           int
	Face                     font.Face
}

// Close releases the atlas texture and the face.
func (f *Font) Close() {
	if f == nil {
		return
	}
	if f.Texture != nil {
		f.Texture.Release()
		f.Texture = nil
	}
	if f.Face != nil {
		_ = f.Face.Close()
		f.Face = nil
	}
}

// Latin1 is the rune set rasterised by default.
func Latin1() []rune {
	var runes []rune
	for r := rune(32); r <= rune(255); r++ {
		runes = append(runes, r)
	}
	return runes
}

// LoadDefault builds an atlas from the embedded Go Regular font.
func LoadDefault(dev gfx.Device, sizePx float32) (*Font, error) {
	return Load(dev, "goregular", goregular.TTF, sizePx, Latin1())
}

// LoadMono builds an atlas from the embedded Go Mono font.
func LoadMono(dev gfx.Device, sizePx float32) (*Font, error) {
	return Load(dev, "gomono", gomono.TTF, sizePx, Latin1())
}

// LoadTTF reads a TrueType or OpenType font from fsys.
func LoadTTF(dev gfx.Device, fsys fs.FS, path string, sizePx float32) (*Font, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	return Load(dev, path, data, sizePx, Latin1())
}

// Load parses ttf and uploads an atlas holding runes.
func Load(dev gfx.Device, label string, ttf []byte, sizePx float32, runes []rune) (*Font, error) {
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("text: parse font %s: %w", label, err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: new face %s: %w", label, err)
	}

	f, atlas, err := rasterize(face, sizePx, runes)
	if err != nil {
		_ = face.Close()
		return nil, err
	}

	tex, err := dev.CreateTexture(gfx.TextureDescriptor{
		Label:  "font." + label,
		Width:  f.AtlasW,
		Height: f.AtlasH,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Filter: gputypes.FilterModeNearest,
		Pixels: atlas.Pix,
	})
	if err != nil {
		_ = face.Close()
		return nil, fmt.Errorf("text: upload atlas %s: %w", label, err)
	}
	f.Texture = tex
	return f, nil
}

type measured struct {
	r      rune
	w, h   int
	adv    float32
	bx, by float32
}

// rasterize packs the glyphs of runes into a square shelf atlas, growing it
// until everything fits.
func rasterize(face font.Face, sizePx float32, runes []rune) (*Font, *image.RGBA, error) {
	// Metrics in pixels
	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	measure := make([]measured, 0, len(runes))
	for _, rr := range runes {
		br, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		measure = append(measure, measured{
			r:   rr,
			w:   (br.Max.X - br.Min.X).Ceil(),
			h:   (br.Max.Y - br.Min.Y).Ceil(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Floor()),
			by:  float32(-br.Min.Y.Floor()), // distance from baseline to top
		})
	}

	size, pos, err := pack(measure, 256)
	if err != nil {
		return nil, nil, err
	}

	// white glyphs with alpha coverage on a transparent background
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		glyph := Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
		}
		if p, ok := pos[g.r]; ok {
			// the drawer's dot sits on the baseline, shifted left by the bearing
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))

			glyph.U0 = float32(p.X) / float32(size)
			glyph.V0 = float32(p.Y) / float32(size)
			glyph.U1 = float32(p.X+g.w) / float32(size)
			glyph.V1 = float32(p.Y+g.h) / float32(size)
		}
		glyphs[g.r] = glyph
	}

	return &Font{
		SizePx:  sizePx,
		Ascent:  ascent,
		Descent: descent,
		LineGap: lineGap,
		Glyphs:  glyphs,
		AtlasW:  size,
		AtlasH:  size,
		Face:    face,
	}, dst, nil
}

// pack places every non-empty glyph on shelves of a square atlas of side
// start, doubling the side up to MaxAtlasSize.
func pack(glyphs []measured, start int) (int, map[rune]image.Point, error) {
	for size := start; size <= MaxAtlasSize; size *= 2 {
		if pos, ok := packInto(glyphs, size); ok {
			return size, pos, nil
		}
	}
	return 0, nil, fmt.Errorf("%w (>%d)", ErrAtlasTooLarge, MaxAtlasSize)
}

func packInto(glyphs []measured, size int) (map[rune]image.Point, bool) {
	x, y, rowH := padding, padding, 0
	pos := make(map[rune]image.Point, len(glyphs))
	for _, g := range glyphs {
		if g.w == 0 || g.h == 0 {
			continue
		}
		if g.w+padding*2 > size || g.h+padding*2 > size {
			return nil, false
		}
		if x+g.w+padding > size {
			x = padding
			y += rowH + padding
			rowH = 0
		}
		if y+g.h+padding > size {
			return nil, false
		}
		pos[g.r] = image.Pt(x, y)
		x += g.w + padding
		if g.h > rowH {
			rowH = g.h
		}
	}
	return pos, true
}
