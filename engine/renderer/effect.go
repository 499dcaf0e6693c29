package renderer

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-aa/engine/postprocess"
)

// shaderEffect draws a registered fullscreen effect pipeline as a post-processing effect.
type shaderEffect struct {
	renderer      EffectRenderer
	name          string
	width, height int
}

// EffectRenderer is the part of the Renderer a shader effect draws through.
type EffectRenderer interface {
	RegisterEffect(key, source string) error
	DrawEffect(key string, width, height int) error
}

var (
	_ postprocess.Effect    = &shaderEffect{}
	_ postprocess.Resizable = &shaderEffect{}
)

// NewShaderEffect registers WGSL source under name and returns an effect that draws it.
// Compiling the pipeline is the expensive part, so effects are built once up front and
// then moved in and out of the composer.
//
// Parameters:
//   - r: the renderer to register with and draw through
//   - name: the effect key
//   - source: the WGSL source
//
// Returns:
//   - postprocess.Effect: the effect, also implementing postprocess.Resizable
//   - error: an error if the pipeline could not be registered
func NewShaderEffect(r EffectRenderer, name, source string) (postprocess.Effect, error) {
	if err := r.RegisterEffect(name, source); err != nil {
		return nil, err
	}
	return &shaderEffect{renderer: r, name: name}, nil
}

// LoadShaderEffect reads a WGSL file and builds a shader effect from it.
//
// Parameters:
//   - r: the renderer to register with and draw through
//   - name: the effect key
//   - path: the WGSL file
//
// Returns:
//   - postprocess.Effect: the effect
//   - error: an error if the file cannot be read or the pipeline could not be registered
func LoadShaderEffect(r EffectRenderer, name, path string) (postprocess.Effect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load effect %q: %w", name, err)
	}
	return NewShaderEffect(r, name, string(data))
}

func (e *shaderEffect) Name() string {
	return e.name
}

// SetSize fixes the viewport the effect draws to. Unsized effects cover the frame.
func (e *shaderEffect) SetSize(width, height int) {
	e.width, e.height = width, height
}

func (e *shaderEffect) Apply(f *postprocess.Frame) error {
	w, h := f.Width, f.Height
	if e.width > 0 && e.height > 0 {
		w, h = e.width, e.height
	}
	return e.renderer.DrawEffect(e.name, w, h)
}
