package system

import (
	"log"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
)

// RoomSystem tracks which room the player is in. Entering a different room
// pushes a RoomTransitionEvent and moves the camera onto the room.
type RoomSystem struct{}

func NewRoomSystem() *RoomSystem {
	return &RoomSystem{}
}

func (s *RoomSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	px, py, ok := entityCenter(w, player)
	if !ok {
		return
	}

	current, ok := ecs.Get(w, player, component.CurrentRoomComponent.Kind())
	if !ok {
		current = &component.CurrentRoom{}
		_ = ecs.Add(w, player, component.CurrentRoomComponent.Kind(), current)
	}

	var entered *component.Room
	ecs.ForEach(w, component.RoomComponent.Kind(), func(e ecs.Entity, r *component.Room) {
		if entered == nil && r.Contains(px, py) {
			entered = r
		}
	})
	if entered == nil || entered.Name == current.Name {
		return
	}

	log.Printf("room: %q -> %q", current.Name, entered.Name)
	w.Events().Push(ecs.Event{
		Type: component.RoomTransitionEvent,
		Data: component.RoomTransition{From: current.Name, To: *entered},
	})
	current.Name = entered.Name

	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		cam.X, cam.Y = entered.X, entered.Y
		cam.Width, cam.Height = entered.W, entered.H
	})
}
