package core

import "github.com/hubastard/hazel/engine/logging"

// Resizer is the part of the render surface driven by window events.
type Resizer interface {
	Resize(width, height int) error
	SetScaleFactor(factor float64, width, height int) error
}

// Translate applies the side effects of raw (input state, surface size) and
// derives the matching engine event, if any.
func Translate(in *InputContext, surface Resizer, raw RawEvent) (Event, bool) {
	switch e := raw.(type) {
	case RawKeyboardInput:
		if e.Key == KeyUnknown {
			return nil, false
		}
		in.Update(e)
		if e.State == Pressed {
			return EventKeyPressed{Key: e.Key}, true
		}
		return EventKeyReleased{Key: e.Key}, true

	case RawMouseInput:
		in.Update(e)
		x, y := in.MousePosition()
		if e.State == Pressed {
			return EventMouseButtonPressed{Button: e.Button, X: x, Y: y}, true
		}
		return EventMouseButtonReleased{Button: e.Button, X: x, Y: y}, true

	case RawCursorMoved, RawModifiersChanged:
		in.Update(e)
		return nil, false

	case RawResized:
		if err := surface.Resize(e.Width, e.Height); err != nil {
			logging.Logger().Warn("surface resize failed", "width", e.Width, "height", e.Height, "err", err)
		}
		return EventWindowResize{Width: e.Width, Height: e.Height}, true

	case RawScaleFactorChanged:
		if err := surface.SetScaleFactor(e.Factor, e.Width, e.Height); err != nil {
			logging.Logger().Warn("surface rescale failed", "factor", e.Factor, "err", err)
		}
		return EventScaleFactorChanged{Factor: e.Factor}, true
	}
	return nil, false
}
