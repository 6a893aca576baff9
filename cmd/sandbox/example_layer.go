package main

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/hubastard/hazel/engine/assets"
	"github.com/hubastard/hazel/engine/core"
	"github.com/hubastard/hazel/engine/gfx"
	"github.com/hubastard/hazel/engine/logging"
	"github.com/hubastard/hazel/engine/profiler"
	"github.com/hubastard/hazel/engine/scene"
)

type colorVertex struct {
	Position [3]float32
	Color    [4]float32
}

var colorLayout = gputypes.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(colorVertex{})),
	StepMode:    gputypes.VertexStepModeVertex,
	Attributes: []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},     // pos
		{Format: gputypes.VertexFormatFloat32x4, Offset: 3 * 4, ShaderLocation: 1}, // color
	},
}

// shape is world-space geometry re-projected through the camera every frame.
type shape struct {
	name  string
	world []colorVertex
	clip  []colorVertex
	mesh  *gfx.Mesh
	pipe  gfx.RenderPipeline
}

func newShape(dev gfx.Device, format gputypes.TextureFormat, name string, verts []colorVertex, indices []uint16) (*shape, error) {
	sh, err := assets.CompileShader(assets.ColorShader)
	if err != nil {
		return nil, err
	}
	pipe, err := gfx.NewRenderPipeline(dev, gfx.PipelineConfig{
		Label:   name,
		Shader:  sh,
		Layouts: []gputypes.VertexBufferLayout{colorLayout},
		Format:  format,
	})
	if err != nil {
		return nil, fmt.Errorf("sandbox: %s pipeline: %w", name, err)
	}
	mesh, err := gfx.NewMesh(dev, name, verts, indices)
	if err != nil {
		pipe.Release()
		return nil, err
	}
	return &shape{
		name:  name,
		world: verts,
		clip:  make([]colorVertex, len(verts)),
		mesh:  mesh,
		pipe:  pipe,
	}, nil
}

func (s *shape) draw(dev gfx.Device, f *gfx.Frame, vp [16]float32) error {
	for i, v := range s.world {
		x, y := scene.Apply(vp, v.Position[0], v.Position[1])
		s.clip[i] = colorVertex{Position: [3]float32{x, y, v.Position[2]}, Color: v.Color}
	}
	if err := dev.WriteBuffer(s.mesh.Vertices, 0, gfx.Bytes(s.clip)); err != nil {
		return fmt.Errorf("sandbox: upload %s: %w", s.name, err)
	}
	s.mesh.Draw(f, s.pipe)
	return nil
}

func (s *shape) release() {
	s.mesh.Release()
	s.pipe.Release()
}

// ExampleLayer draws a square behind a triangle, pans the camera with WASD
// and closes the application when Escape is released.
type ExampleLayer struct {
	core.BaseLayer
	cam      *scene.OrthoCamera2D
	ctrl     *scene.OrthoController2D
	square   *shape
	triangle *shape
}

func NewExampleLayer() *ExampleLayer {
	return &ExampleLayer{BaseLayer: core.BaseLayer{LayerName: "Example"}}
}

func (l *ExampleLayer) OnAttach(app *core.Application) error {
	w, h := app.Surface().Size()
	l.cam = scene.NewAspectOrtho2D(w, h)
	l.ctrl = scene.NewOrthoController2D(l.cam)

	dev, format := app.Device(), app.Surface().Format()
	var err error
	l.square, err = newShape(dev, format, "square", []colorVertex{
		{Position: [3]float32{-0.75, -0.75, 0}, Color: [4]float32{0.2, 0.3, 0.8, 1}},
		{Position: [3]float32{0.75, -0.75, 0}, Color: [4]float32{0.2, 0.3, 0.8, 1}},
		{Position: [3]float32{0.75, 0.75, 0}, Color: [4]float32{0.2, 0.3, 0.8, 1}},
		{Position: [3]float32{-0.75, 0.75, 0}, Color: [4]float32{0.2, 0.3, 0.8, 1}},
	}, []uint16{0, 1, 2, 2, 3, 0})
	if err != nil {
		return err
	}
	l.triangle, err = newShape(dev, format, "triangle", []colorVertex{
		{Position: [3]float32{-0.5, -0.5, 0}, Color: [4]float32{0.8, 0.2, 0.8, 1}},
		{Position: [3]float32{0.5, -0.5, 0}, Color: [4]float32{0.2, 0.3, 0.8, 1}},
		{Position: [3]float32{0, 0.5, 0}, Color: [4]float32{0.8, 0.8, 0.2, 1}},
	}, []uint16{0, 1, 2})
	if err != nil {
		l.square.release()
		l.square = nil
		return err
	}
	return nil
}

func (l *ExampleLayer) OnDetach(*core.Application) {
	for _, s := range []*shape{l.square, l.triangle} {
		if s != nil {
			s.release()
		}
	}
	l.square, l.triangle = nil, nil
}

func (l *ExampleLayer) OnUpdate(app *core.Application, dt time.Duration) {
	in := app.Input()
	if in.IsKeyPressed(core.KeyA) {
		logging.Logger().Debug("A key is pressed")
	}
	if in.IsKeyReleased(core.KeyEscape) {
		app.Close()
	}
	l.ctrl.Update(in, dt)
}

func (l *ExampleLayer) OnEvent(_ *core.Application, ev core.Event) {
	l.ctrl.OnEvent(ev)
}

func (l *ExampleLayer) OnRender(app *core.Application, f *gfx.Frame) {
	defer profiler.Start("Example.draw")()
	vp := l.cam.VP()
	for _, s := range []*shape{l.square, l.triangle} {
		if err := s.draw(app.Device(), f, vp); err != nil {
			logging.Logger().Error("draw shape", "error", err)
		}
	}
}

// Camera is the camera the shapes are projected through.
func (l *ExampleLayer) Camera() *scene.OrthoCamera2D { return l.cam }
