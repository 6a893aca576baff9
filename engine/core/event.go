package core

// ElementState is the state carried by key and mouse button events.
type ElementState uint8

const (
	Pressed ElementState = iota
	Released
)

func (s ElementState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// RawEvent is an event as delivered by the windowing collaborator.
type RawEvent interface{ isRawEvent() }

type RawCloseRequested struct{}

type RawRedrawRequested struct{}

// RawResized carries the new framebuffer size in physical pixels.
type RawResized struct{ Width, Height int }

// RawScaleFactorChanged carries the new scale factor and the physical
// size the window will have with it.
type RawScaleFactorChanged struct {
	Factor        float64
	Width, Height int
}

type RawKeyboardInput struct {
	Key    Key
	State  ElementState
	Repeat bool
}

type RawMouseInput struct {
	Button MouseButton
	State  ElementState
}

type RawCursorMoved struct{ X, Y float64 }

type RawModifiersChanged struct{ Mods Modifiers }

func (RawCloseRequested) isRawEvent()     {}
func (RawRedrawRequested) isRawEvent()    {}
func (RawResized) isRawEvent()            {}
func (RawScaleFactorChanged) isRawEvent() {}
func (RawKeyboardInput) isRawEvent()      {}
func (RawMouseInput) isRawEvent()         {}
func (RawCursorMoved) isRawEvent()        {}
func (RawModifiersChanged) isRawEvent()   {}

// Event is the engine-level event derived from a RawEvent.
type Event interface{ isEvent() }

type EventKeyPressed struct{ Key Key }

type EventKeyReleased struct{ Key Key }

// EventMouseButtonPressed carries the cursor position at the time of the press.
type EventMouseButtonPressed struct {
	Button MouseButton
	X, Y   float64
}

type EventMouseButtonReleased struct {
	Button MouseButton
	X, Y   float64
}

type EventWindowResize struct{ Width, Height int }

type EventScaleFactorChanged struct{ Factor float64 }

func (EventKeyPressed) isEvent()          {}
func (EventKeyReleased) isEvent()         {}
func (EventMouseButtonPressed) isEvent()  {}
func (EventMouseButtonReleased) isEvent() {}
func (EventWindowResize) isEvent()        {}
func (EventScaleFactorChanged) isEvent()  {}
