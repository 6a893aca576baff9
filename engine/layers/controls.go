package layers

import (
	"fmt"
	"time"

	"github.com/hubastard/hazel/engine/colors"
	"github.com/hubastard/hazel/engine/core"
	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/ui"
)

const controlsFontSize = 16

// Controls is a retained-mode panel of sliders driving the clear colour.
// Mouse input is queued from raw events and applied in OnUpdate.
type Controls struct {
	core.BaseLayer
	overlay
	program *ColorProgram
	state   *ui.State
}

func NewControls() *Controls {
	return &Controls{BaseLayer: core.BaseLayer{LayerName: "Controls"}}
}

// Program is the colour program behind the panel.
func (l *Controls) Program() *ColorProgram { return l.program }

func (l *Controls) OnAttach(app *core.Application) error {
	o, err := newOverlay(app, controlsFontSize)
	if err != nil {
		return err
	}
	l.overlay = o
	l.program = NewColorProgram(app.ClearColor())
	l.state = ui.NewState(l.program)
	return nil
}

func (l *Controls) OnDetach(*core.Application) { l.release() }

func (l *Controls) OnRawEvent(_ *core.Application, ev core.RawEvent) {
	if e, ok := ui.FromRaw(ev); ok {
		l.state.QueueEvent(e)
	}
}

func (l *Controls) OnUpdate(app *core.Application, _ time.Duration) {
	if l.state.IsQueueEmpty() {
		return
	}
	if l.state.Update(l.context(viewport(app.Surface().Size()))) > 0 {
		app.SetClearColor(l.program.Color())
	}
}

func (l *Controls) OnRender(app *core.Application, f *gfx.Frame) {
	l.draw(l.Name(), f, func() { l.state.Draw(l.context(viewport(f.Size()))) })
	app.Window().SetCursorIcon(l.state.Interaction())
}

func (l *Controls) context(vp [4]float32) *ui.Context {
	return &ui.Context{Viewport: vp, DefaultFont: l.font, Renderer: l.r2d}
}

type (
	// SetChannel sets one RGB channel of the colour.
	SetChannel struct {
		Channel int
		Value   float32
	}
	// ResetColor restores the colour the program started with.
	ResetColor struct{}
)

// ColorProgram edits an opaque RGB colour.
type ColorProgram struct {
	color   colors.Color
	initial colors.Color
	sliders [3]ui.SliderState
	reset   ui.ButtonState
}

func NewColorProgram(initial colors.Color) *ColorProgram {
	return &ColorProgram{color: initial, initial: initial}
}

func (p *ColorProgram) Color() colors.Color { return p.color }

func (p *ColorProgram) Update(msg ui.Message) {
	switch m := msg.(type) {
	case SetChannel:
		p.color[m.Channel] = m.Value
	case ResetColor:
		p.color = p.initial
	}
}

var channelNames = [3]string{"R", "G", "B"}

func (p *ColorProgram) View() ui.UIElement {
	rows := make([]ui.UIElement, 0, 5)
	rows = append(rows, ui.Label("Background").Color(colors.Yellow))
	for i, name := range channelNames {
		rows = append(rows, ui.View(
			ui.Label(fmt.Sprintf("%s %.2f", name, p.color[i])).WidthFixed(56),
			ui.Slider(&p.sliders[i], 0, 1, p.color[i], func(v float32) ui.Message {
				return SetChannel{Channel: i, Value: v}
			}),
		).Gap(8).AlignCross(ui.AlignCenter))
	}
	rows = append(rows, ui.Button("Reset", &p.reset, ResetColor{}))

	panel := ui.View(rows...).
		FlowDirection(ui.LayoutVertical).
		Padding(12).
		Gap(8).
		BgColor(colors.Black.WithAlpha(0.5))

	return ui.View(panel).
		WidthExpand().
		HeightExpand().
		FlowDirection(ui.LayoutVertical).
		AlignMain(ui.AlignEnd).
		AlignCross(ui.AlignEnd).
		Padding(16)
}
