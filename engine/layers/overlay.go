// Package layers holds the overlays the sandbox pushes on top of its own
// layers: an immediate-mode debug panel, retained-mode controls for the
// clear colour and a line of debug text.
package layers

import (
	"fmt"

	"github.com/hubastard/hazel/engine/core"
	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/gfx/renderer2d"
	"github.com/hubastard/hazel/engine/logging"
	"github.com/hubastard/hazel/engine/scene"
	"github.com/hubastard/hazel/engine/text"
)

// overlay is the 2D renderer and font a UI layer draws with, in
// framebuffer pixels with the origin top-left.
type overlay struct {
	r2d  *renderer2d.Renderer2D
	font *text.Font
}

func newOverlay(app *core.Application, fontSize float32) (overlay, error) {
	r2d, err := renderer2d.New(app.Device(), app.Surface().Format(), 0)
	if err != nil {
		return overlay{}, fmt.Errorf("layers: create renderer: %w", err)
	}
	font, err := text.LoadDefault(app.Device(), fontSize)
	if err != nil {
		r2d.Release()
		return overlay{}, fmt.Errorf("layers: load font: %w", err)
	}
	return overlay{r2d: r2d, font: font}, nil
}

func (o *overlay) release() {
	if o.font != nil {
		o.font.Close()
		o.font = nil
	}
	if o.r2d != nil {
		o.r2d.Release()
		o.r2d = nil
	}
}

// draw runs fn inside a pixel-space scene recorded into f, sized to the
// target f was acquired for.
func (o *overlay) draw(layer string, f *gfx.Frame, fn func()) {
	w, h := f.Size()
	o.r2d.BeginScene(f, scene.PixelVP(w, h))
	fn()
	if err := o.r2d.EndScene(); err != nil {
		logging.Logger().Error("overlay draw failed", "layer", layer, "error", err)
	}
}

// viewport is a w by h framebuffer as x, y, w, h.
func viewport(w, h int) [4]float32 {
	return [4]float32{0, 0, float32(w), float32(h)}
}
