package gfx

import "github.com/gogpu/gputypes"

// Frame records draw commands against one acquired target. A Frame is only
// valid between Surface.BeginFrame and Surface.EndFrame; layers must not keep
// it past their OnRender call. Any use after EndFrame panics.
type Frame struct {
	target Target
	seq    uint64
	cmds   []Command
	ended  bool
}

func newFrame(target Target, seq uint64) *Frame {
	return &Frame{target: target, seq: seq, cmds: make([]Command, 0, 64)}
}

func (f *Frame) Target() Target            { return f.target }
func (f *Frame) Size() (width, height int) { return f.target.Width, f.target.Height }

// Seq numbers the frames of a surface from 1. Resources written while
// recording (such as streamed vertex data) can be keyed on it.
func (f *Frame) Seq() uint64 { return f.seq }

// Clear fills the whole target with c.
func (f *Frame) Clear(c gputypes.Color) {
	f.record(Command{Kind: CommandClear, Color: c})
}

func (f *Frame) SetPipeline(p RenderPipeline) {
	f.record(Command{Kind: CommandSetPipeline, Pipeline: p})
}

func (f *Frame) SetVertexBuffer(slot uint32, b Buffer, offset uint64) {
	f.record(Command{Kind: CommandSetVertexBuffer, Slot: slot, Buffer: b, Offset: offset})
}

func (f *Frame) SetIndexBuffer(b Buffer, format gputypes.IndexFormat, offset uint64) {
	f.record(Command{Kind: CommandSetIndexBuffer, Buffer: b, IndexFormat: format, Offset: offset})
}

// SetTexture binds t (with its sampler) to the given binding of group 0.
func (f *Frame) SetTexture(binding uint32, t Texture) {
	f.record(Command{Kind: CommandSetTexture, Slot: binding, Texture: t})
}

func (f *Frame) Draw(vertexCount, firstVertex uint32) {
	f.record(Command{Kind: CommandDraw, Count: vertexCount, First: firstVertex})
}

func (f *Frame) DrawIndexed(indexCount, firstIndex uint32, baseVertex int32) {
	f.record(Command{Kind: CommandDrawIndexed, Count: indexCount, First: firstIndex, BaseVertex: baseVertex})
}

// Len reports how many commands were recorded so far.
func (f *Frame) Len() int { return len(f.cmds) }

func (f *Frame) record(c Command) {
	if f.ended {
		panic("gfx: frame used after EndFrame")
	}
	f.cmds = append(f.cmds, c)
}

func (f *Frame) finish() []Command {
	if f.ended {
		panic("gfx: frame ended twice")
	}
	f.ended = true
	cmds := f.cmds
	f.cmds = nil
	return cmds
}
