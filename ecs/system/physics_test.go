package system

import (
	"math"
	"testing"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
)

func addBox(t *testing.T, w *ecs.World, x, y float64, body component.PhysicsBody) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &body); err != nil {
		t.Fatalf("add body: %v", err)
	}
	return e
}

func TestPhysicsBlockHitsWall(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(0)

	addBox(t, w, 100, 0, component.PhysicsBody{Width: 16, Height: 100, Static: true})
	block := addBox(t, w, 40, 40, component.PhysicsBody{Width: 16, Height: 16, Mass: 500, NoGravity: true, Role: component.BodyRoleBlock})

	ps.Update(w)
	body, _ := ecs.Get(w, block, component.PhysicsBodyComponent.Kind())
	if body.Body == nil {
		t.Fatalf("physics should create the block body")
	}
	if ecs.Has(w, block, component.WallHitComponent.Kind()) {
		t.Fatalf("no wall hit expected before the block moves")
	}
	body.Body.SetVelocity(300, 0)

	for i := 0; i < 60 && !ecs.Has(w, block, component.WallHitComponent.Kind()); i++ {
		ps.Update(w)
	}

	hit, ok := ecs.Get(w, block, component.WallHitComponent.Kind())
	if !ok {
		t.Fatalf("expected a wall hit")
	}
	if hit.Count != 1 {
		t.Fatalf("expected one wall hit, got %d", hit.Count)
	}
	if math.Abs(hit.NormalX) < 0.5 {
		t.Fatalf("expected a horizontal contact normal, got (%v, %v)", hit.NormalX, hit.NormalY)
	}

	tr, _ := ecs.Get(w, block, component.TransformComponent.Kind())
	if tr.Y < 39 || tr.Y > 41 {
		t.Fatalf("block without gravity should keep its height, got y=%v", tr.Y)
	}
}

func TestPhysicsPlayerLands(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(0)

	addBox(t, w, 0, 80, component.PhysicsBody{Width: 200, Height: 16, Static: true})
	player := addBox(t, w, 50, 50, component.PhysicsBody{Width: 10, Height: 20, Mass: 1, Role: component.BodyRolePlayer})
	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{}); err != nil {
		t.Fatalf("add player: %v", err)
	}

	ps.Update(w)
	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	if p.Grounded {
		t.Fatalf("player should start airborne")
	}

	for i := 0; i < 60; i++ {
		ps.Update(w)
	}
	if !p.Grounded {
		t.Fatalf("player should be grounded after falling onto the floor")
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.Y < 58 || tr.Y > 61 {
		t.Fatalf("player should rest on the floor, got y=%v", tr.Y)
	}
}

func TestPhysicsRemovesDestroyedBodies(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(0)

	e := addBox(t, w, 0, 0, component.PhysicsBody{Width: 8, Height: 8, Mass: 1})
	ps.Update(w)
	if len(ps.entities) != 1 {
		t.Fatalf("expected one tracked body, got %d", len(ps.entities))
	}

	w.DestroyEntity(e)
	ps.Update(w)
	if len(ps.entities) != 0 {
		t.Fatalf("expected no tracked bodies, got %d", len(ps.entities))
	}
}
