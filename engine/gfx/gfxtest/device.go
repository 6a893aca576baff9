// Package gfxtest provides an in-memory gfx.Device for tests.
package gfxtest

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/hubastard/hazel/engine/gfx"
)

// Device records every call made to it. Failures can be injected for the
// next Configure or Acquire calls.
type Device struct {
	Configs   []gfx.SurfaceConfig
	Submitted [][]gfx.Command
	Presented []gfx.Target
	Modules   []*ShaderModule
	Pipelines []*Pipeline
	Buffers   []*Buffer
	Textures  []*Texture
	Destroyed bool

	acquireErrs  []error
	configureErr error
	current      gfx.SurfaceConfig
	generation   uint64
}

func NewDevice() *Device { return &Device{} }

// FailAcquire queues err to be returned by the next Acquire call.
func (d *Device) FailAcquire(err error) { d.acquireErrs = append(d.acquireErrs, err) }

// FailConfigure makes Configure return err until cleared with nil.
func (d *Device) FailConfigure(err error) { d.configureErr = err }

// Generation is the id of the presentation resource currently configured.
func (d *Device) Generation() uint64 { return d.generation }

func (d *Device) Info() gfx.AdapterInfo {
	return gfx.AdapterInfo{Backend: "test", Vendor: "gfxtest", Renderer: "memory", Version: "1"}
}

func (d *Device) Configure(cfg gfx.SurfaceConfig) error {
	if d.configureErr != nil {
		return d.configureErr
	}
	d.Configs = append(d.Configs, cfg)
	d.current = cfg
	d.generation++
	return nil
}

func (d *Device) Acquire() (gfx.Target, error) {
	if len(d.acquireErrs) > 0 {
		err := d.acquireErrs[0]
		d.acquireErrs = d.acquireErrs[1:]
		return gfx.Target{}, err
	}
	if d.generation == 0 {
		return gfx.Target{}, fmt.Errorf("gfxtest: acquire before configure: %w", gfx.ErrSurfaceOutdated)
	}
	return gfx.Target{
		Width:       d.current.Width,
		Height:      d.current.Height,
		Format:      d.current.Format,
		PresentMode: d.current.PresentMode,
		Generation:  d.generation,
	}, nil
}

func (d *Device) Submit(_ gfx.Target, cmds []gfx.Command) error {
	d.Submitted = append(d.Submitted, cmds)
	return nil
}

func (d *Device) Present(target gfx.Target) error {
	d.Presented = append(d.Presented, target)
	return nil
}

func (d *Device) CreateShaderModule(desc gfx.ShaderModuleDescriptor) (gfx.ShaderModule, error) {
	m := &ShaderModule{Desc: desc}
	d.Modules = append(d.Modules, m)
	return m, nil
}

func (d *Device) CreateRenderPipeline(desc gfx.RenderPipelineDescriptor) (gfx.RenderPipeline, error) {
	p := &Pipeline{Desc: desc}
	d.Pipelines = append(d.Pipelines, p)
	return p, nil
}

func (d *Device) CreateBuffer(desc gfx.BufferDescriptor) (gfx.Buffer, error) {
	if uint64(len(desc.Contents)) > desc.Size {
		return nil, fmt.Errorf("gfxtest: %d bytes of contents for a %d byte buffer", len(desc.Contents), desc.Size)
	}
	b := &Buffer{Label: desc.Label, Usage: desc.Usage, Data: make([]byte, desc.Size)}
	copy(b.Data, desc.Contents)
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Device) WriteBuffer(buf gfx.Buffer, offset uint64, data []byte) error {
	b, ok := buf.(*Buffer)
	if !ok {
		return fmt.Errorf("gfxtest: foreign buffer %T", buf)
	}
	if offset+uint64(len(data)) > uint64(len(b.Data)) {
		return fmt.Errorf("gfxtest: write of %d bytes at %d overflows %q", len(data), offset, b.Label)
	}
	copy(b.Data[offset:], data)
	b.Writes++
	return nil
}

func (d *Device) CreateTexture(desc gfx.TextureDescriptor) (gfx.Texture, error) {
	if want := desc.Width * desc.Height * 4; len(desc.Pixels) != 0 && len(desc.Pixels) != want {
		return nil, fmt.Errorf("gfxtest: texture %q has %d bytes, want %d", desc.Label, len(desc.Pixels), want)
	}
	t := &Texture{Desc: desc}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) Destroy() { d.Destroyed = true }

type ShaderModule struct {
	Desc     gfx.ShaderModuleDescriptor
	Released bool
}

func (m *ShaderModule) Stage() gputypes.ShaderStage { return m.Desc.Stage }
func (m *ShaderModule) Release()                    { m.Released = true }

type Pipeline struct {
	Desc     gfx.RenderPipelineDescriptor
	Released bool
}

func (p *Pipeline) Release() { p.Released = true }

type Buffer struct {
	Label    string
	Usage    gputypes.BufferUsage
	Data     []byte
	Writes   int
	Released bool
}

func (b *Buffer) Size() uint64 { return uint64(len(b.Data)) }
func (b *Buffer) Release()     { b.Released = true }

type Texture struct {
	Desc     gfx.TextureDescriptor
	Released bool
}

func (t *Texture) Size() (int, int) { return t.Desc.Width, t.Desc.Height }
func (t *Texture) Release()         { t.Released = true }

// Kinds lists the command kinds of one submission, handy for assertions.
func Kinds(cmds []gfx.Command) []gfx.CommandKind {
	out := make([]gfx.CommandKind, len(cmds))
	for i, c := range cmds {
		out[i] = c.Kind
	}
	return out
}
