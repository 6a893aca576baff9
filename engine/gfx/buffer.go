package gfx

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"
)

// Vertex is a coloured 3D vertex.
type Vertex struct {
	Position [3]float32
	Color    [4]float32
}

// VertexLayout describes Vertex for a pipeline: position at location 0,
// colour at location 1.
var VertexLayout = gputypes.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(Vertex{})),
	StepMode:    gputypes.VertexStepModeVertex,
	Attributes: []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x4, Offset: 3 * 4, ShaderLocation: 1},
	},
}

// Bytes reinterprets a slice of plain values as bytes without copying.
// T must not contain pointers.
func Bytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

func align4(n uint64) uint64 { return (n + 3) &^ 3 }

// NewVertexBuffer uploads vertices into a new vertex buffer.
func NewVertexBuffer[T any](dev Device, label string, vertices []T) (Buffer, error) {
	data := Bytes(vertices)
	b, err := dev.CreateBuffer(BufferDescriptor{
		Label:    label,
		Size:     align4(uint64(len(data))),
		Usage:    gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		Contents: data,
	})
	if err != nil {
		return nil, fmt.Errorf("gfx: vertex buffer %q: %w", label, err)
	}
	return b, nil
}

// NewIndexBuffer uploads 16-bit indices into a new index buffer.
func NewIndexBuffer(dev Device, label string, indices []uint16) (Buffer, error) {
	data := Bytes(indices)
	b, err := dev.CreateBuffer(BufferDescriptor{
		Label:    label,
		Size:     align4(uint64(len(data))),
		Usage:    gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
		Contents: data,
	})
	if err != nil {
		return nil, fmt.Errorf("gfx: index buffer %q: %w", label, err)
	}
	return b, nil
}

// Mesh pairs a vertex buffer with a 16-bit index buffer.
type Mesh struct {
	Vertices   Buffer
	Indices    Buffer
	IndexCount uint32
}

func NewMesh[T any](dev Device, label string, vertices []T, indices []uint16) (*Mesh, error) {
	vb, err := NewVertexBuffer(dev, label+".vertices", vertices)
	if err != nil {
		return nil, err
	}
	ib, err := NewIndexBuffer(dev, label+".indices", indices)
	if err != nil {
		vb.Release()
		return nil, err
	}
	return &Mesh{Vertices: vb, Indices: ib, IndexCount: uint32(len(indices))}, nil
}

// Draw records the commands drawing the whole mesh with p.
func (m *Mesh) Draw(f *Frame, p RenderPipeline) {
	f.SetPipeline(p)
	f.SetVertexBuffer(0, m.Vertices, 0)
	f.SetIndexBuffer(m.Indices, gputypes.IndexFormatUint16, 0)
	f.DrawIndexed(m.IndexCount, 0, 0)
}

func (m *Mesh) Release() {
	m.Vertices.Release()
	m.Indices.Release()
}
