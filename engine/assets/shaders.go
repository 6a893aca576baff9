// Package assets embeds the engine's shaders and loads images into textures.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/hubastard/hazel/engine/gfx"
)

//go:embed shaders/*.wgsl
var shaderFS embed.FS

// Shader names understood by LoadShader.
const (
	ColorShader = "color.wgsl"
	QuadShader  = "quad.wgsl"
)

// LoadShader returns the WGSL source of an embedded shader.
func LoadShader(name string) (string, error) {
	b, err := fs.ReadFile(shaderFS, path.Join("shaders", name))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	return string(b), nil
}

// CompileShader loads and compiles an embedded shader.
func CompileShader(name string) (*gfx.Shader, error) {
	src, err := LoadShader(name)
	if err != nil {
		return nil, err
	}
	return gfx.CompileShader(strings.TrimSuffix(name, ".wgsl"), src)
}

// Shaders lists the embedded shader names.
func Shaders() []string {
	entries, _ := fs.ReadDir(shaderFS, "shaders")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}
