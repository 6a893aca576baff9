package layers

import (
	"github.com/hubastard/hazel/engine/colors"
	"github.com/hubastard/hazel/engine/core"
	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/text"
)

const (
	debugTextSize   = 20
	debugTextMargin = 16
)

// DebugText greets from the bottom-left corner of the window.
type DebugText struct {
	core.BaseLayer
	overlay
	message string
}

func NewDebugText() *DebugText {
	return &DebugText{BaseLayer: core.BaseLayer{LayerName: "DebugText"}}
}

func (l *DebugText) Message() string { return l.message }

func (l *DebugText) OnAttach(app *core.Application) error {
	o, err := newOverlay(app, debugTextSize)
	if err != nil {
		return err
	}
	l.overlay = o
	l.message = "Hello world from: " + app.Name()
	return nil
}

func (l *DebugText) OnDetach(*core.Application) { l.release() }

func (l *DebugText) OnRender(_ *core.Application, f *gfx.Frame) {
	_, h := f.Size()
	y := float32(h) - debugTextMargin - text.LineHeight(l.font)
	l.draw(l.Name(), f, func() {
		text.DrawText(l.r2d, l.font, debugTextMargin, y, l.message, colors.White)
	})
}
