package liquid

import (
	"maps"

	"github.com/hajimehoshi/ebiten/v2"
)

const instantiatedSuffix = " (Instantiated)"

// Material pairs a Kage shader with the uniforms and source images it is
// drawn with.
type Material struct {
	Name     string
	Shader   *ebiten.Shader
	Uniforms map[string]interface{}
	Images   [4]*ebiten.Image
}

func NewMaterial(name string, shader *ebiten.Shader) *Material {
	return &Material{
		Name:     name,
		Shader:   shader,
		Uniforms: map[string]interface{}{},
	}
}

// Instantiate returns a copy that can be given its own uniforms without
// touching the prototype. The shader is shared.
func (m *Material) Instantiate() *Material {
	if m == nil {
		return nil
	}
	inst := &Material{
		Name:     m.Name + instantiatedSuffix,
		Shader:   m.Shader,
		Uniforms: maps.Clone(m.Uniforms),
		Images:   m.Images,
	}
	if inst.Uniforms == nil {
		inst.Uniforms = map[string]interface{}{}
	}
	return inst
}

func (m *Material) SetFloat(name string, v float64) {
	m.Uniforms[name] = float32(v)
}

// SetVector stores a vec2/vec3/vec4 uniform.
func (m *Material) SetVector(name string, v ...float64) {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	m.Uniforms[name] = out
}

// Vector returns a uniform set with SetVector.
func (m *Material) Vector(name string) ([]float64, bool) {
	raw, ok := m.Uniforms[name].([]float32)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(raw))
	for i, f := range raw {
		out[i] = float64(f)
	}
	return out, true
}

func (m *Material) SetTexture(slot int, img *ebiten.Image) {
	if slot < 0 || slot >= len(m.Images) {
		return
	}
	m.Images[slot] = img
}

// DrawRect draws a w by h region of dst with the material, placed by geo.
// Every source image must be w by h.
func (m *Material) DrawRect(dst *ebiten.Image, w, h int, geo ebiten.GeoM) {
	if m == nil || m.Shader == nil || dst == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawRectShaderOptions{
		GeoM:     geo,
		Images:   m.Images,
		Uniforms: m.Uniforms,
	}
	dst.DrawRectShader(w, h, m.Shader, op)
}
