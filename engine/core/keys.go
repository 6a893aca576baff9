package core

import "github.com/gogpu/gpucontext"

// Input vocabulary shared with the platform layer.
type (
	Key         = gpucontext.Key
	MouseButton = gpucontext.MouseButton
	Modifiers   = gpucontext.Modifiers
	CursorIcon  = gpucontext.CursorShape
)

// Keys used by the engine's own layers. Every other key is available from
// gpucontext directly.
const (
	KeyUnknown = gpucontext.KeyUnknown
	KeyEscape  = gpucontext.KeyEscape
	KeySpace   = gpucontext.KeySpace
	KeyEnter   = gpucontext.KeyEnter
	KeyTab     = gpucontext.KeyTab
	KeyA       = gpucontext.KeyA
	KeyD       = gpucontext.KeyD
	KeyP       = gpucontext.KeyP
	KeyS       = gpucontext.KeyS
	KeyV       = gpucontext.KeyV
	KeyW       = gpucontext.KeyW
	KeyF1      = gpucontext.KeyF1
)

const (
	MouseButtonLeft   = gpucontext.MouseButtonLeft
	MouseButtonRight  = gpucontext.MouseButtonRight
	MouseButtonMiddle = gpucontext.MouseButtonMiddle
)

const (
	ModShift   = gpucontext.ModShift
	ModControl = gpucontext.ModControl
	ModAlt     = gpucontext.ModAlt
	ModSuper   = gpucontext.ModSuper
)
