package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/prefabs"
)

var defaultPlayerColor = color.RGBA{0xf2, 0xf2, 0xf2, 0xff}

// NewPlayerAt creates the player with its top-left corner at x, y.
func NewPlayerAt(w *ecs.World, spec prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	width, height := spec.Width, spec.Height
	if width <= 0 || height <= 0 {
		width, height = 14, 24
	}

	player := ecs.CreateEntity(w)
	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:  width,
		Height: height,
		Mass:   1,
		Role:   component.BodyRolePlayer,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, player, component.FillComponent.Kind(), &component.Fill{Color: spec.Color.RGBA8(defaultPlayerColor)}); err != nil {
		return 0, fmt.Errorf("player: add fill: %w", err)
	}
	if err := ecs.Add(w, player, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index}); err != nil {
		return 0, fmt.Errorf("player: add render layer: %w", err)
	}
	if err := ecs.Add(w, player, component.CurrentRoomComponent.Kind(), &component.CurrentRoom{}); err != nil {
		return 0, fmt.Errorf("player: add current room: %w", err)
	}

	return player, nil
}
