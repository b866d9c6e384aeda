package entity

import (
	"fmt"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
)

// NewCamera creates a camera with a width by height view at the origin. The
// room system moves it onto the player's room.
func NewCamera(w *ecs.World, width, height float64) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		Width:  width,
		Height: height,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}
