package ui

import (
	"github.com/gogpu/gpucontext"

	"github.com/hubastard/hazel/engine/core"
)

type CursorIcon = core.CursorIcon

const (
	CursorDefault = gpucontext.CursorDefault
	CursorPointer = gpucontext.CursorPointer
	CursorDrag    = gpucontext.CursorResizeEW
)

const MouseLeft = core.MouseButtonLeft

// Event is a pointer event in the UI's pixel space.
type Event interface{ isEvent() }

type CursorMoved struct{ X, Y float32 }

type MouseButtonPressed struct{ Button core.MouseButton }

type MouseButtonReleased struct{ Button core.MouseButton }

func (CursorMoved) isEvent()         {}
func (MouseButtonPressed) isEvent()  {}
func (MouseButtonReleased) isEvent() {}

// FromRaw converts the raw window events the UI cares about.
func FromRaw(raw core.RawEvent) (Event, bool) {
	switch ev := raw.(type) {
	case core.RawCursorMoved:
		return CursorMoved{X: float32(ev.X), Y: float32(ev.Y)}, true
	case core.RawMouseInput:
		if ev.State == core.Pressed {
			return MouseButtonPressed{Button: ev.Button}, true
		}
		return MouseButtonReleased{Button: ev.Button}, true
	}
	return nil, false
}

// Message is anything a widget publishes for the Program.
type Message any

// Shell collects the messages published while dispatching events.
type Shell struct{ messages []Message }

func (s *Shell) Publish(m Message) { s.messages = append(s.messages, m) }

func (s *Shell) Messages() []Message { return s.messages }
