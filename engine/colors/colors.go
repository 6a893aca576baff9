// Package colors holds the RGBA colour type shared by the renderers and UI.
package colors

import "github.com/gogpu/gputypes"

// Color is linear RGBA in [0, 1].
type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	// Background is the default clear colour.
	Background = Color{0.1, 0.2, 0.3, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Scale multiplies the RGB channels by f, leaving alpha alone.
func (c Color) Scale(f float32) Color {
	for i := range 3 {
		c[i] = clamp01(c[i] * f)
	}
	return c
}

// GPU converts c to the clear/blend colour type of the GPU layer.
func (c Color) GPU() gputypes.Color {
	return gputypes.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3])}
}

func FromGPU(g gputypes.Color) Color {
	return Color{float32(g.R), float32(g.G), float32(g.B), float32(g.A)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
