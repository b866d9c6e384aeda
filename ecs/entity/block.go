package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/molten/common"
	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/levels"
	"github.com/milk9111/molten/prefabs"
)

var defaultBlockColor = color.RGBA{0xd9, 0x4a, 0x1e, 0xff}

// NewBlock places a moving block. The block's machine is started by the
// moving block system once physics has created its body.
func NewBlock(w *ecs.World, prefab string, spec prefabs.MovingBlockSpec, b levels.Block) (ecs.Entity, error) {
	width, height := spec.Width, spec.Height
	if width <= 0 || height <= 0 {
		width, height = 32, 32
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = 500
	}

	mb := &component.MovingBlock{
		Prefab:   prefab,
		DirX:     b.DirX,
		DirY:     b.DirY,
		Distance: b.Distance,
	}
	mb.Tuning = mb.Apply(spec.Tuning(common.Step))

	block := ecs.CreateEntity(w)
	if err := ecs.Add(w, block, component.MovingBlockComponent.Kind(), mb); err != nil {
		return 0, fmt.Errorf("block: add moving block: %w", err)
	}
	if err := ecs.Add(w, block, component.TransformComponent.Kind(), &component.Transform{X: b.X, Y: b.Y}); err != nil {
		return 0, fmt.Errorf("block: add transform: %w", err)
	}
	if err := ecs.Add(w, block, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:     width,
		Height:    height,
		Mass:      mass,
		NoGravity: true,
		Role:      component.BodyRoleBlock,
	}); err != nil {
		return 0, fmt.Errorf("block: add physics body: %w", err)
	}
	if err := ecs.Add(w, block, component.FillComponent.Kind(), &component.Fill{Color: spec.Color.RGBA8(defaultBlockColor)}); err != nil {
		return 0, fmt.Errorf("block: add fill: %w", err)
	}
	if err := ecs.Add(w, block, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index}); err != nil {
		return 0, fmt.Errorf("block: add render layer: %w", err)
	}
	if spec.Activation.Script != "" {
		if err := ecs.Add(w, block, component.ActivationTriggerComponent.Kind(), &component.ActivationTrigger{
			Script:   spec.Activation.Script,
			Range:    spec.Activation.Range,
			Cooldown: spec.Activation.Cooldown,
		}); err != nil {
			return 0, fmt.Errorf("block: add activation trigger: %w", err)
		}
	}

	return block, nil
}
