package entity

import (
	"fmt"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/levels"
	"github.com/milk9111/molten/liquid"
	"github.com/milk9111/molten/prefabs"
)

// Prefabs are the loaded prefab specs a level is built from.
type Prefabs struct {
	Player prefabs.PlayerSpec
	Liquid prefabs.LiquidSpec
	// Blocks caches block specs by file name. Missing entries are loaded on
	// demand.
	Blocks map[string]prefabs.MovingBlockSpec
	// Surface is the listener material prototype for pools.
	Surface *liquid.Material
}

func (p *Prefabs) block(name string) (prefabs.MovingBlockSpec, error) {
	if spec, ok := p.Blocks[name]; ok {
		return spec, nil
	}
	spec, err := prefabs.LoadSpec[prefabs.MovingBlockSpec](name)
	if err != nil {
		return prefabs.MovingBlockSpec{}, err
	}
	if p.Blocks == nil {
		p.Blocks = map[string]prefabs.MovingBlockSpec{}
	}
	p.Blocks[name] = spec
	return spec, nil
}

// LoadLevel creates every room, wall, block and pool of lvl plus the player
// at the spawn point. It returns the player.
func LoadLevel(w *ecs.World, lvl *levels.Level, p *Prefabs) (ecs.Entity, error) {
	if w == nil || lvl == nil || p == nil {
		return 0, fmt.Errorf("load level: world, level and prefabs are required")
	}

	for _, r := range lvl.Rooms {
		if _, err := NewRoom(w, r); err != nil {
			return 0, err
		}
	}
	for _, r := range lvl.Walls {
		if _, err := NewWall(w, r); err != nil {
			return 0, err
		}
	}
	for i, b := range lvl.Blocks {
		name := b.Prefab
		if name == "" {
			name = prefabs.MovingBlockFile
		}
		spec, err := p.block(name)
		if err != nil {
			return 0, fmt.Errorf("load level: block %d: %w", i, err)
		}
		if _, err := NewBlock(w, name, spec, b); err != nil {
			return 0, err
		}
	}
	for _, pool := range lvl.Pools {
		if _, err := NewLiquidPool(w, p.Surface, p.Liquid, pool); err != nil {
			return 0, err
		}
	}

	return NewPlayerAt(w, p.Player, lvl.Spawn.X, lvl.Spawn.Y)
}
