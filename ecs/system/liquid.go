package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/liquid"
)

// LiquidSystem forwards room transitions to the liquid simulation and feeds
// it the player's position and velocity every update.
type LiquidSystem struct {
	sim *liquid.Simulation
}

func NewLiquidSystem(sim *liquid.Simulation) *LiquidSystem {
	return &LiquidSystem{sim: sim}
}

func (s *LiquidSystem) Simulation() *liquid.Simulation {
	return s.sim
}

func (s *LiquidSystem) Update(w *ecs.World) {
	if s == nil || s.sim == nil || w == nil {
		return
	}

	for _, ev := range w.Events().Of(component.RoomTransitionEvent) {
		rt, ok := ev.Data.(component.RoomTransition)
		if !ok {
			continue
		}
		s.sim.OnRoomTransition(liquid.Rect{X: rt.To.X, Y: rt.To.Y, W: rt.To.W, H: rt.To.H})
	}

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	px, py, ok := entityCenter(w, player)
	if !ok {
		return
	}
	var vx, vy float64
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		v := body.Body.Velocity()
		vx, vy = v.X, v.Y
	}
	s.sim.Update(px, py, vx, vy)
}

// Draw draws the liquid surfaces of the current room.
func (s *LiquidSystem) Draw(screen *ebiten.Image, camX, camY float64) {
	if s == nil || s.sim == nil {
		return
	}
	s.sim.Draw(screen, camX, camY)
}
