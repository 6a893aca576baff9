package text

import (
	"github.com/hubastard/hazel/engine/colors"
	"github.com/hubastard/hazel/engine/gfx/renderer2d"
)

// DrawText draws s with its top-left corner at (x, y). Positive Y goes
// downward, matching a pixel-space scene.
func DrawText(r2d *renderer2d.Renderer2D, font *Font, x, y float32, s string, color colors.Color) {
	penX := x
	baseY := y + font.Ascent // move origin to top left
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += LineHeight(font)
			prev = -1
			continue
		}

		g, ok := font.Glyphs[r]
		if !ok {
			penX += missingAdvance(font)
			prev = r
			continue
		}
		penX += font.kern(prev, r)

		if g.W > 0 && g.H > 0 {
			// top = baseline - BearingY
			left := penX + g.BearingX
			top := baseY - g.BearingY
			r2d.DrawTexturedQuadUV(
				left+float32(g.W)*0.5, top+float32(g.H)*0.5,
				float32(g.W), float32(g.H),
				font.Texture, color, 0,
				g.U0, g.V0, g.U1, g.V1,
			)
		}

		penX += g.Advance
		prev = r
	}
}

// MeasureText reports the size of the box DrawText fills for s.
func MeasureText(font *Font, s string) (width, height float32) {
	var lineW float32
	var prev rune = -1
	height = LineHeight(font)

	for _, r := range s {
		if r == '\n' {
			width = max(width, lineW)
			lineW = 0
			height += LineHeight(font)
			prev = -1
			continue
		}

		g, ok := font.Glyphs[r]
		if !ok {
			lineW += missingAdvance(font)
			prev = r
			continue
		}
		lineW += font.kern(prev, r) + g.Advance
		prev = r
	}
	return max(width, lineW), height
}

// Baseline-to-top distance (useful to position text by top-left).
func BaselineToTop(font *Font) float32    { return font.Ascent }
func BaselineToBottom(font *Font) float32 { return -font.Descent }
func LineHeight(font *Font) float32       { return font.Ascent - font.Descent + font.LineGap }

// missingAdvance is the gap left for runes outside the atlas.
func missingAdvance(font *Font) float32 {
	if sp, ok := font.Glyphs[' ']; ok {
		return sp.Advance
	}
	return 0
}

func (f *Font) kern(prev, r rune) float32 {
	if prev < 0 || f.Face == nil {
		return 0
	}
	return float32(f.Face.Kern(prev, r)) / 64.0
}
