package system

import (
	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
)

// PlayerControllerSystem turns input into player body velocity: run on the
// ground and in the air, jump only when grounded.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		v := body.Body.Velocity()
		v.X = input.MoveX * player.MoveSpeed
		if input.JumpPressed && player.Grounded {
			v.Y = -player.JumpSpeed
			player.Grounded = false
		}
		// short hop when jump is released while rising
		if !input.Jump && v.Y < 0 {
			v.Y *= 0.5
		}
		body.Body.SetVelocity(v.X, v.Y)
	})
}
