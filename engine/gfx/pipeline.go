package gfx

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

const (
	DefaultVertexEntry   = "vs_main"
	DefaultFragmentEntry = "fs_main"
)

// DefaultPrimitiveState is a triangle list with counter-clockwise front
// faces and back faces culled.
func DefaultPrimitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  gputypes.CullModeBack,
	}
}

// PipelineConfig describes a single-target render pipeline.
type PipelineConfig struct {
	Label         string
	Shader        *Shader
	VertexEntry   string // defaults to vs_main
	FragmentEntry string // defaults to fs_main
	Layouts       []gputypes.VertexBufferLayout
	Format        gputypes.TextureFormat // defaults to DefaultFormat
	Blend         *gputypes.BlendState   // nil replaces the target
	NoCull        bool
}

// NewRenderPipeline builds shader modules for both stages and links them
// into a pipeline. The modules are released once the pipeline exists.
func NewRenderPipeline(dev Device, cfg PipelineConfig) (RenderPipeline, error) {
	if cfg.Shader == nil {
		return nil, fmt.Errorf("gfx: pipeline %q: no shader", cfg.Label)
	}
	if cfg.VertexEntry == "" {
		cfg.VertexEntry = DefaultVertexEntry
	}
	if cfg.FragmentEntry == "" {
		cfg.FragmentEntry = DefaultFragmentEntry
	}
	if cfg.Format == 0 {
		cfg.Format = DefaultFormat
	}

	vs, err := newModule(dev, cfg.Label, cfg.Shader, cfg.VertexEntry, gputypes.ShaderStageVertex)
	if err != nil {
		return nil, err
	}
	defer vs.Release()
	fs, err := newModule(dev, cfg.Label, cfg.Shader, cfg.FragmentEntry, gputypes.ShaderStageFragment)
	if err != nil {
		return nil, err
	}
	defer fs.Release()

	prim := DefaultPrimitiveState()
	if cfg.NoCull {
		prim.CullMode = gputypes.CullModeNone
	}
	p, err := dev.CreateRenderPipeline(RenderPipelineDescriptor{
		Label:  cfg.Label,
		Vertex: VertexState{Module: vs, Buffers: cfg.Layouts},
		Fragment: FragmentState{Module: fs, Targets: []gputypes.ColorTargetState{{
			Format:    cfg.Format,
			Blend:     cfg.Blend,
			WriteMask: gputypes.ColorWriteMaskAll,
		}}},
		Primitive:   prim,
		Multisample: gputypes.DefaultMultisampleState(),
	})
	if err != nil {
		return nil, fmt.Errorf("gfx: pipeline %q: %w", cfg.Label, err)
	}
	return p, nil
}

func newModule(dev Device, label string, sh *Shader, entry string, stage gputypes.ShaderStage) (ShaderModule, error) {
	got, ok := sh.Stage(entry)
	if !ok {
		return nil, fmt.Errorf("%w: %s: no entry point %q", ErrShaderCompile, sh.Label, entry)
	}
	if got != stage {
		return nil, fmt.Errorf("%w: %s: entry point %q is a %v shader, want %v", ErrShaderCompile, sh.Label, entry, got, stage)
	}
	m, err := dev.CreateShaderModule(ShaderModuleDescriptor{
		Label:      label + "." + entry,
		Shader:     sh,
		EntryPoint: entry,
		Stage:      stage,
	})
	if err != nil {
		return nil, fmt.Errorf("gfx: shader module %s.%s: %w", label, entry, err)
	}
	return m, nil
}
