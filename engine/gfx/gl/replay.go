package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/hubastard/hazel/engine/gfx"
)

const maxVertexSlots = 4

// replayState is the binding state built up while replaying a frame.
type replayState struct {
	pipeline  *pipeline
	vertex    [maxVertexSlots]*buffer
	vertexOff [maxVertexSlots]uint64
	index     *buffer
	indexFmt  gputypes.IndexFormat
	indexOff  uint64
	enabled   uint32 // attribute locations currently enabled
}

// Submit replays cmds into the default framebuffer.
func (d *Device) Submit(target gfx.Target, cmds []gfx.Command) error {
	if err := d.checkTarget(target); err != nil {
		return err
	}
	d.state = replayState{enabled: d.state.enabled}
	gl.BindVertexArray(d.vao)

	for i := range cmds {
		if err := d.exec(&cmds[i]); err != nil {
			return fmt.Errorf("gl: command %d (%v): %w", i, cmds[i].Kind, err)
		}
	}
	gl.UseProgram(0)
	return checkError("submit")
}

func (d *Device) exec(c *gfx.Command) error {
	st := &d.state
	switch c.Kind {
	case gfx.CommandClear:
		gl.ColorMask(true, true, true, true)
		gl.ClearColor(float32(c.Color.R), float32(c.Color.G), float32(c.Color.B), float32(c.Color.A))
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if st.pipeline != nil {
			applyWriteMask(st.pipeline.writeMask)
		}

	case gfx.CommandSetPipeline:
		p, ok := c.Pipeline.(*pipeline)
		if !ok {
			return fmt.Errorf("foreign pipeline %T", c.Pipeline)
		}
		st.pipeline = p
		bindPipeline(p)

	case gfx.CommandSetVertexBuffer:
		b, ok := c.Buffer.(*buffer)
		if !ok {
			return fmt.Errorf("foreign buffer %T", c.Buffer)
		}
		if c.Slot >= maxVertexSlots {
			return fmt.Errorf("vertex slot %d out of range", c.Slot)
		}
		st.vertex[c.Slot], st.vertexOff[c.Slot] = b, c.Offset

	case gfx.CommandSetIndexBuffer:
		b, ok := c.Buffer.(*buffer)
		if !ok {
			return fmt.Errorf("foreign buffer %T", c.Buffer)
		}
		st.index, st.indexFmt, st.indexOff = b, c.IndexFormat, c.Offset
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)

	case gfx.CommandSetTexture:
		t, ok := c.Texture.(*texture)
		if !ok {
			return fmt.Errorf("foreign texture %T", c.Texture)
		}
		gl.ActiveTexture(gl.TEXTURE0 + c.Slot)
		gl.BindTexture(gl.TEXTURE_2D, t.id)

	case gfx.CommandDraw:
		if err := d.bindVertices(); err != nil {
			return err
		}
		gl.DrawArrays(primitiveMode(st.pipeline.primitive.Topology), int32(c.First), int32(c.Count))

	case gfx.CommandDrawIndexed:
		if st.index == nil {
			return fmt.Errorf("no index buffer")
		}
		if err := d.bindVertices(); err != nil {
			return err
		}
		offset := st.indexOff + uint64(c.First)*uint64(st.indexFmt.Size())
		gl.DrawElementsBaseVertex(primitiveMode(st.pipeline.primitive.Topology), int32(c.Count),
			indexType(st.indexFmt), gl.PtrOffset(int(offset)), c.BaseVertex)

	default:
		return fmt.Errorf("unknown command")
	}
	return nil
}

func bindPipeline(p *pipeline) {
	gl.UseProgram(p.program)

	if p.primitive.CullMode == gputypes.CullModeNone {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(cullFace(p.primitive.CullMode))
	}
	gl.FrontFace(frontFace(p.primitive.FrontFace))

	if p.blend == nil {
		gl.Disable(gl.BLEND)
	} else {
		gl.Enable(gl.BLEND)
		gl.BlendEquationSeparate(blendEquation(p.blend.Color.Operation), blendEquation(p.blend.Alpha.Operation))
		gl.BlendFuncSeparate(
			blendFactor(p.blend.Color.SrcFactor), blendFactor(p.blend.Color.DstFactor),
			blendFactor(p.blend.Alpha.SrcFactor), blendFactor(p.blend.Alpha.DstFactor))
	}
	applyWriteMask(p.writeMask)
}

func applyWriteMask(m gputypes.ColorWriteMask) {
	gl.ColorMask(
		m&gputypes.ColorWriteMaskRed != 0,
		m&gputypes.ColorWriteMaskGreen != 0,
		m&gputypes.ColorWriteMaskBlue != 0,
		m&gputypes.ColorWriteMaskAlpha != 0)
}

// bindVertices points every attribute of the pipeline's layouts at the
// buffer bound to its slot and disables the locations it does not use.
func (d *Device) bindVertices() error {
	st := &d.state
	if st.pipeline == nil {
		return fmt.Errorf("draw without a pipeline")
	}
	var enabled uint32
	for slot, layout := range st.pipeline.layouts {
		if slot >= maxVertexSlots || st.vertex[slot] == nil {
			return fmt.Errorf("no vertex buffer in slot %d", slot)
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, st.vertex[slot].id)
		divisor := uint32(0)
		if layout.StepMode == gputypes.VertexStepModeInstance {
			divisor = 1
		}
		for _, attr := range layout.Attributes {
			f, ok := vertexAttribFormat(attr.Format)
			if !ok {
				return fmt.Errorf("unsupported vertex format %v", attr.Format)
			}
			loc := attr.ShaderLocation
			off := uintptr(st.vertexOff[slot] + attr.Offset)
			gl.EnableVertexAttribArray(loc)
			if f.integer {
				gl.VertexAttribIPointerWithOffset(loc, f.size, f.xtype, int32(layout.ArrayStride), off)
			} else {
				gl.VertexAttribPointerWithOffset(loc, f.size, f.xtype, f.normalized, int32(layout.ArrayStride), off)
			}
			gl.VertexAttribDivisor(loc, divisor)
			enabled |= 1 << loc
		}
	}
	for loc := uint32(0); loc < 32; loc++ {
		if st.enabled&(1<<loc) != 0 && enabled&(1<<loc) == 0 {
			gl.DisableVertexAttribArray(loc)
		}
	}
	st.enabled = enabled
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}
