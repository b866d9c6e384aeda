package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/levels"
	"github.com/milk9111/molten/liquid"
	"github.com/milk9111/molten/prefabs"
)

var defaultLiquidColor = color.RGBA{0xff, 0x45, 0x00, 0xff}

// NewLiquidPool creates a pool whose material is an instance of surface with
// the pool's rectangle, tint and glow set. surface may be nil, leaving the
// pool without a material.
func NewLiquidPool(w *ecs.World, surface *liquid.Material, spec prefabs.LiquidSpec, p levels.Liquid) (ecs.Entity, error) {
	pool := &component.LiquidPool{
		Room:  p.Room,
		W:     p.W,
		H:     p.H,
		Color: spec.Color.RGBA8(defaultLiquidColor),
	}
	if surface != nil {
		pool.Material = surface.Instantiate()
		pool.Material.SetVector("Pool", p.X, p.Y, p.W, p.H)
	}
	TintPool(pool, spec)

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.LiquidPoolComponent.Kind(), pool); err != nil {
		return 0, fmt.Errorf("liquid pool: add pool: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y}); err != nil {
		return 0, fmt.Errorf("liquid pool: add transform: %w", err)
	}
	return e, nil
}

// TintPool applies the prefab's color and glow to the pool's material.
func TintPool(pool *component.LiquidPool, spec prefabs.LiquidSpec) {
	pool.Color = spec.Color.RGBA8(defaultLiquidColor)
	if pool.Material == nil {
		return
	}
	c := pool.Color
	pool.Material.SetVector("Tint", float64(c.R)/0xff, float64(c.G)/0xff, float64(c.B)/0xff, float64(c.A)/0xff)
	pool.Material.SetFloat("Glow", spec.Glow)
}

// PoolMaterials returns every pool with a material and those materials, in
// entity order.
func PoolMaterials(w *ecs.World) ([]ecs.Entity, []*liquid.Material) {
	var entities []ecs.Entity
	var materials []*liquid.Material
	ecs.ForEach(w, component.LiquidPoolComponent.Kind(), func(e ecs.Entity, pool *component.LiquidPool) {
		if pool.Material == nil {
			return
		}
		entities = append(entities, e)
		materials = append(materials, pool.Material)
	})
	return entities, materials
}

// BindPools points each pool at the simulation's instance of its material.
// entities must be the list PoolMaterials returned for the materials sim was
// built with.
func BindPools(w *ecs.World, entities []ecs.Entity, sim *liquid.Simulation) {
	listeners := sim.Listeners()
	for i, e := range entities {
		if i >= len(listeners) {
			return
		}
		if pool, ok := ecs.Get(w, e, component.LiquidPoolComponent.Kind()); ok {
			pool.Material = listeners[i]
		}
	}
}
