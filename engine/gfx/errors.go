package gfx

import "errors"

var (
	// ErrDroppedFrame marks a frame that could not be acquired this tick.
	// The caller skips rendering and tries again on the next tick.
	ErrDroppedFrame = errors.New("gfx: dropped frame")

	// ErrSurfaceOutdated is returned by a Device when the presentation
	// resource no longer matches the window and must be configured again.
	ErrSurfaceOutdated = errors.New("gfx: surface outdated")

	// ErrDeviceLost is fatal: the device cannot render anymore.
	ErrDeviceLost = errors.New("gfx: device lost")

	// ErrShaderCompile wraps every shader front end or validation failure.
	ErrShaderCompile = errors.New("gfx: shader compile failed")
)
