package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/hubastard/hazel/engine/gfx"
)

type buffer struct {
	id    uint32
	size  uint64
	usage gputypes.BufferUsage
}

func (b *buffer) Size() uint64 { return b.size }

func (b *buffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// CreateBuffer allocates a buffer object. Buffers written after creation
// are allocated as dynamic storage.
func (d *Device) CreateBuffer(desc gfx.BufferDescriptor) (gfx.Buffer, error) {
	if uint64(len(desc.Contents)) > desc.Size {
		return nil, fmt.Errorf("gl: buffer %q: %d bytes of contents for %d bytes", desc.Label, len(desc.Contents), desc.Size)
	}
	usage := uint32(gl.STATIC_DRAW)
	if desc.Usage.Contains(gputypes.BufferUsageCopyDst) {
		usage = gl.DYNAMIC_DRAW
	}

	b := &buffer{size: desc.Size, usage: desc.Usage}
	gl.GenBuffers(1, &b.id)
	// bound as ARRAY_BUFFER whatever the usage so the VAO's index binding stays put
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ARRAY_BUFFER, int(desc.Size), nil, usage)
	if len(desc.Contents) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(desc.Contents), gl.Ptr(desc.Contents))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if err := checkError("create buffer " + desc.Label); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

func (d *Device) WriteBuffer(buf gfx.Buffer, offset uint64, data []byte) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("gl: write to foreign buffer %T", buf)
	}
	if offset+uint64(len(data)) > b.size {
		return fmt.Errorf("gl: write of %d bytes at %d overflows a %d byte buffer", len(data), offset, b.size)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferSubData(gl.ARRAY_BUFFER, int(offset), len(data), gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return checkError("write buffer")
}

type texture struct {
	id            uint32
	width, height int
}

func (t *texture) Size() (int, int) { return t.width, t.height }

func (t *texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// CreateTexture uploads an 8-bit RGBA texture with clamped edges.
func (d *Device) CreateTexture(desc gfx.TextureDescriptor) (gfx.Texture, error) {
	internal, format, xtype, ok := textureFormat(desc.Format)
	if !ok {
		return nil, fmt.Errorf("gl: texture %q: unsupported format %v", desc.Label, desc.Format)
	}
	if want := desc.Width * desc.Height * 4; len(desc.Pixels) != 0 && len(desc.Pixels) != want {
		return nil, fmt.Errorf("gl: texture %q: %d bytes of pixels, want %d", desc.Label, len(desc.Pixels), want)
	}

	t := &texture{width: desc.Width, height: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	filter := filterMode(desc.Filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	var pixels unsafe.Pointer
	if len(desc.Pixels) > 0 {
		pixels = gl.Ptr(desc.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, xtype, pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if err := checkError("create texture " + desc.Label); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}
