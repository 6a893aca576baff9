package gfx

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
)

// Shader is a WGSL program lowered to validated IR. Backends translate the
// IR (or the SPIR-V words) into whatever their API consumes.
type Shader struct {
	Label  string
	Source string
	Module *ir.Module
	SPIRV  []uint32
}

// CompileShader parses, lowers and validates WGSL source. Errors wrap
// ErrShaderCompile and are meant to abort setup.
func CompileShader(label, source string) (*Shader, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShaderCompile, label, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShaderCompile, label, err)
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShaderCompile, label, err)
	}
	if len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrShaderCompile, label, verrs[0])
	}
	code, err := naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShaderCompile, label, err)
	}

	// SPIR-V is a stream of little-endian 32-bit words
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = uint32(code[i*4]) |
			uint32(code[i*4+1])<<8 |
			uint32(code[i*4+2])<<16 |
			uint32(code[i*4+3])<<24
	}

	return &Shader{Label: label, Source: source, Module: module, SPIRV: words}, nil
}

// Stage reports the stage of the named entry point.
func (s *Shader) Stage(entryPoint string) (gputypes.ShaderStage, bool) {
	for _, ep := range s.Module.EntryPoints {
		if ep.Name != entryPoint {
			continue
		}
		switch ep.Stage {
		case ir.StageVertex:
			return gputypes.ShaderStageVertex, true
		case ir.StageFragment:
			return gputypes.ShaderStageFragment, true
		case ir.StageCompute:
			return gputypes.ShaderStageCompute, true
		}
		return 0, false
	}
	return 0, false
}

// EntryPoints lists the entry point names in declaration order.
func (s *Shader) EntryPoints() []string {
	names := make([]string, 0, len(s.Module.EntryPoints))
	for _, ep := range s.Module.EntryPoints {
		names = append(names, ep.Name)
	}
	return names
}
