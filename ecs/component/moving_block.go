package component

import "github.com/milk9111/molten/movingblock"

// MovingBlock is a hazard block. Mover and Machine are built by
// MovingBlockSystem once the physics body exists.
type MovingBlock struct {
	Prefab string
	Tuning movingblock.Tuning
	// Placement overrides from the level; zero keeps the prefab value.
	DirX, DirY float64
	Distance   float64

	Mover   *movingblock.BodyMover
	Machine *movingblock.Machine
	// LastError is the most recent error the machine reported, for the
	// debug panel.
	LastError string
	// HitNormalX and HitNormalY are the normal of the last solid contact.
	HitNormalX, HitNormalY float64
	HitCount               int
}

// Apply returns t with the block's placement overrides.
func (mb *MovingBlock) Apply(t movingblock.Tuning) movingblock.Tuning {
	if mb.DirX != 0 || mb.DirY != 0 {
		t.DirX, t.DirY = mb.DirX, mb.DirY
	}
	if mb.Distance > 0 {
		t.Distance = mb.Distance
	}
	return t
}

var MovingBlockComponent = NewComponent[MovingBlock]()
