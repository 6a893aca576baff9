package gfx

import "github.com/gogpu/gputypes"

// Device is the GPU collaborator. A backend implements it on top of a
// native graphics API; the engine only talks to the GPU through it.
type Device interface {
	Info() AdapterInfo

	// Configure (re)creates the presentation resource.
	Configure(cfg SurfaceConfig) error
	// Acquire returns the drawable for the next frame. Failures wrapping
	// ErrSurfaceOutdated force a reconfigure; any other failure except
	// ErrDeviceLost is treated as a dropped frame.
	Acquire() (Target, error)
	Submit(target Target, cmds []Command) error
	Present(target Target) error

	CreateShaderModule(desc ShaderModuleDescriptor) (ShaderModule, error)
	CreateRenderPipeline(desc RenderPipelineDescriptor) (RenderPipeline, error)
	CreateBuffer(desc BufferDescriptor) (Buffer, error)
	WriteBuffer(buf Buffer, offset uint64, data []byte) error
	CreateTexture(desc TextureDescriptor) (Texture, error)

	Destroy()
}

// DeviceOptions are the hints used when opening a device.
type DeviceOptions struct {
	Label           string
	PowerPreference gputypes.PowerPreference
}

// AdapterInfo describes the adapter behind a Device.
type AdapterInfo struct {
	Backend  string
	Vendor   string
	Renderer string
	Version  string
}

// Target is the drawable handed out by Device.Acquire.
type Target struct {
	Width, Height int
	Format        gputypes.TextureFormat
	PresentMode   gputypes.PresentMode
	// Generation identifies the presentation resource the target came from.
	// It changes every time the device is configured.
	Generation uint64
}

type ShaderModule interface {
	Stage() gputypes.ShaderStage
	Release()
}

type RenderPipeline interface {
	Release()
}

type Buffer interface {
	Size() uint64
	Release()
}

type Texture interface {
	Size() (width, height int)
	Release()
}

type ShaderModuleDescriptor struct {
	Label      string
	Shader     *Shader
	EntryPoint string
	Stage      gputypes.ShaderStage
}

type VertexState struct {
	Module  ShaderModule
	Buffers []gputypes.VertexBufferLayout
}

type FragmentState struct {
	Module  ShaderModule
	Targets []gputypes.ColorTargetState
}

type RenderPipelineDescriptor struct {
	Label       string
	Vertex      VertexState
	Fragment    FragmentState
	Primitive   gputypes.PrimitiveState
	Multisample gputypes.MultisampleState
}

type BufferDescriptor struct {
	Label    string
	Size     uint64
	Usage    gputypes.BufferUsage
	Contents []byte // optional initial data, len(Contents) <= Size
}

type TextureDescriptor struct {
	Label         string
	Width, Height int
	Format        gputypes.TextureFormat
	Filter        gputypes.FilterMode
	Pixels        []byte // tightly packed rows, top row first
}

// CommandKind tags a recorded Command.
type CommandKind uint8

const (
	CommandClear CommandKind = iota
	CommandSetPipeline
	CommandSetVertexBuffer
	CommandSetIndexBuffer
	CommandSetTexture
	CommandDraw
	CommandDrawIndexed
)

func (k CommandKind) String() string {
	switch k {
	case CommandClear:
		return "Clear"
	case CommandSetPipeline:
		return "SetPipeline"
	case CommandSetVertexBuffer:
		return "SetVertexBuffer"
	case CommandSetIndexBuffer:
		return "SetIndexBuffer"
	case CommandSetTexture:
		return "SetTexture"
	case CommandDraw:
		return "Draw"
	case CommandDrawIndexed:
		return "DrawIndexed"
	}
	return "Unknown"
}

// Command is one recorded render pass operation. Only the fields relevant
// to Kind are set.
type Command struct {
	Kind        CommandKind
	Color       gputypes.Color
	Pipeline    RenderPipeline
	Buffer      Buffer
	Offset      uint64
	Slot        uint32
	IndexFormat gputypes.IndexFormat
	Texture     Texture
	Count       uint32
	First       uint32
	BaseVertex  int32
}
