package core

// InputContext tracks keyboard and mouse state built from raw events.
//
// Released keys are an edge signal: only the most recent release is kept,
// and the Application clears it at the end of every tick.
type InputContext struct {
	keys        map[Key]struct{}
	released    Key
	hasReleased bool
	buttons     map[MouseButton]struct{}
	mouseX      float64
	mouseY      float64
	mods        Modifiers
}

func NewInputContext() *InputContext {
	return &InputContext{
		keys:    make(map[Key]struct{}, 16),
		buttons: make(map[MouseButton]struct{}, 4),
	}
}

// Update applies one raw event. Events that carry no input are ignored.
func (in *InputContext) Update(ev RawEvent) {
	switch e := ev.(type) {
	case RawKeyboardInput:
		if e.State == Pressed {
			in.keys[e.Key] = struct{}{}
			if in.hasReleased && in.released == e.Key {
				in.hasReleased = false
			}
			return
		}
		delete(in.keys, e.Key)
		in.released, in.hasReleased = e.Key, true
	case RawMouseInput:
		if e.State == Pressed {
			in.buttons[e.Button] = struct{}{}
		} else {
			delete(in.buttons, e.Button)
		}
	case RawCursorMoved:
		in.mouseX, in.mouseY = e.X, e.Y
	case RawModifiersChanged:
		in.mods = e.Mods
	}
}

func (in *InputContext) IsKeyPressed(k Key) bool {
	_, ok := in.keys[k]
	return ok
}

// IsKeyReleased reports whether k is the most recently released key of the
// current tick.
func (in *InputContext) IsKeyReleased(k Key) bool {
	return in.hasReleased && in.released == k
}

func (in *InputContext) IsMouseButtonPressed(b MouseButton) bool {
	_, ok := in.buttons[b]
	return ok
}

func (in *InputContext) MousePosition() (x, y float64) { return in.mouseX, in.mouseY }
func (in *InputContext) Modifiers() Modifiers           { return in.mods }

// ClearReleased forgets the last released key.
func (in *InputContext) ClearReleased() { in.hasReleased = false }
