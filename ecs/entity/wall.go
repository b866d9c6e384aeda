package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/levels"
)

var wallColor = color.RGBA{0x3a, 0x34, 0x30, 0xff}

func NewWall(w *ecs.World, r levels.Rect) (ecs.Entity, error) {
	wall := ecs.CreateEntity(w)
	if err := ecs.Add(w, wall, component.WallTagComponent.Kind(), &component.WallTag{}); err != nil {
		return 0, fmt.Errorf("wall: add tag: %w", err)
	}
	if err := ecs.Add(w, wall, component.TransformComponent.Kind(), &component.Transform{X: r.X, Y: r.Y}); err != nil {
		return 0, fmt.Errorf("wall: add transform: %w", err)
	}
	if err := ecs.Add(w, wall, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    r.W,
		Height:   r.H,
		Friction: 0.8,
		Static:   true,
		Role:     component.BodyRoleSolid,
	}); err != nil {
		return 0, fmt.Errorf("wall: add physics body: %w", err)
	}
	if err := ecs.Add(w, wall, component.FillComponent.Kind(), &component.Fill{Color: wallColor}); err != nil {
		return 0, fmt.Errorf("wall: add fill: %w", err)
	}
	if err := ecs.Add(w, wall, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: 1}); err != nil {
		return 0, fmt.Errorf("wall: add render layer: %w", err)
	}
	return wall, nil
}

func NewRoom(w *ecs.World, r levels.Room) (ecs.Entity, error) {
	room := ecs.CreateEntity(w)
	if err := ecs.Add(w, room, component.RoomComponent.Kind(), &component.Room{
		Name: r.Name,
		X:    r.X,
		Y:    r.Y,
		W:    r.W,
		H:    r.H,
	}); err != nil {
		return 0, fmt.Errorf("room %s: add room: %w", r.Name, err)
	}
	return room, nil
}
