package liquid

import (
	"embed"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/*.kage
var shadersFS embed.FS

const (
	SimulationShader = "shaders/simulation.kage"
	SurfaceShader    = "shaders/surface.kage"
)

// LoadShader compiles an embedded Kage shader.
func LoadShader(name string) (*ebiten.Shader, error) {
	src, err := shadersFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("liquid: read %s: %w", name, err)
	}
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("liquid: compile %s: %w", name, err)
	}
	return sh, nil
}
