package glbackend

import (
	"fmt"
	"maps"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/glsl"

	"github.com/hubastard/hazel/engine/gfx"
)

// glslModule is one entry point translated to GLSL.
type glslModule struct {
	source string
	// samplers maps each combined sampler2D uniform to its texture unit,
	// which is the texture's binding in group 0.
	samplers map[string]int32
}

// translate converts entry of sh to GLSL 330.
func translate(sh *gfx.Shader, entry string) (glslModule, error) {
	// glsl.Compile emits a module without main for an unknown entry point.
	if _, ok := sh.Stage(entry); !ok {
		return glslModule{}, fmt.Errorf("%w: %s: no entry point %q", gfx.ErrShaderCompile, sh.Label, entry)
	}
	src, info, err := glsl.Compile(sh.Module, glsl.Options{
		LangVersion: glsl.Version330,
		EntryPoint:  entry,
	})
	if err != nil {
		return glslModule{}, fmt.Errorf("%w: %s.%s: glsl: %w", gfx.ErrShaderCompile, sh.Label, entry, err)
	}
	m := glslModule{source: src, samplers: make(map[string]int32, len(info.TextureMappings))}
	for name, tm := range info.TextureMappings {
		if tm.TextureBinding.Group != 0 {
			return glslModule{}, fmt.Errorf("%w: %s: texture %s is in group %d, only group 0 is supported",
				gfx.ErrShaderCompile, sh.Label, name, tm.TextureBinding.Group)
		}
		m.samplers[name] = int32(tm.TextureBinding.Binding)
	}
	return m, nil
}

type shaderModule struct {
	id       uint32
	stage    gputypes.ShaderStage
	samplers map[string]int32
}

func (m *shaderModule) Stage() gputypes.ShaderStage { return m.stage }

func (m *shaderModule) Release() {
	if m.id != 0 {
		gl.DeleteShader(m.id)
		m.id = 0
	}
}

func (d *Device) CreateShaderModule(desc gfx.ShaderModuleDescriptor) (gfx.ShaderModule, error) {
	var kind uint32
	switch desc.Stage {
	case gputypes.ShaderStageVertex:
		kind = gl.VERTEX_SHADER
	case gputypes.ShaderStageFragment:
		kind = gl.FRAGMENT_SHADER
	default:
		return nil, fmt.Errorf("%w: %s: %v shaders need OpenGL 4.3", gfx.ErrShaderCompile, desc.Label, desc.Stage)
	}
	tr, err := translate(desc.Shader, desc.EntryPoint)
	if err != nil {
		return nil, err
	}
	id, err := makeShader(tr.source, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", gfx.ErrShaderCompile, desc.Label, err)
	}
	return &shaderModule{id: id, stage: desc.Stage, samplers: tr.samplers}, nil
}

// pipeline is a linked program plus the fixed-function state it draws with.
type pipeline struct {
	program   uint32
	layouts   []gputypes.VertexBufferLayout
	primitive gputypes.PrimitiveState
	blend     *gputypes.BlendState
	writeMask gputypes.ColorWriteMask
}

func (p *pipeline) Release() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}

func (d *Device) CreateRenderPipeline(desc gfx.RenderPipelineDescriptor) (gfx.RenderPipeline, error) {
	vs, ok := desc.Vertex.Module.(*shaderModule)
	if !ok {
		return nil, fmt.Errorf("gl: pipeline %q: foreign vertex module %T", desc.Label, desc.Vertex.Module)
	}
	fs, ok := desc.Fragment.Module.(*shaderModule)
	if !ok {
		return nil, fmt.Errorf("gl: pipeline %q: foreign fragment module %T", desc.Label, desc.Fragment.Module)
	}
	if len(desc.Fragment.Targets) != 1 {
		return nil, fmt.Errorf("gl: pipeline %q: %d color targets, the default framebuffer has one", desc.Label, len(desc.Fragment.Targets))
	}

	prog, err := linkProgram(vs.id, fs.id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", gfx.ErrShaderCompile, desc.Label, err)
	}

	// Samplers read their unit from a uniform in GLSL 330.
	samplers := maps.Clone(vs.samplers)
	maps.Copy(samplers, fs.samplers)
	gl.UseProgram(prog)
	for name, unit := range samplers {
		if loc := gl.GetUniformLocation(prog, gl.Str(name+"\x00")); loc >= 0 {
			gl.Uniform1i(loc, unit)
		}
	}
	gl.UseProgram(0)

	if err := checkError("create pipeline " + desc.Label); err != nil {
		gl.DeleteProgram(prog)
		return nil, err
	}
	target := desc.Fragment.Targets[0]
	return &pipeline{
		program:   prog,
		layouts:   desc.Vertex.Buffers,
		primitive: desc.Primitive,
		blend:     target.Blend,
		writeMask: target.WriteMask,
	}, nil
}

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

// linkProgram links two compiled shaders. The shaders stay owned by their
// modules.
func linkProgram(vs, fs uint32) (uint32, error) {
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DetachShader(prog, vs)
	gl.DetachShader(prog, fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}
