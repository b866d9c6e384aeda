package system

import (
	"log"
	"log/slog"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/fsm"
	"github.com/milk9111/molten/movingblock"
)

// MovingBlockSystem is the fixed-step driver for block machines. Each update
// it turns pending activation requests and wall hits into machine events and
// steps every machine once, so events are handled before the tick.
type MovingBlockSystem struct {
	def *fsm.Definition[movingblock.Mover, movingblock.Input]
}

func NewMovingBlockSystem(def *fsm.Definition[movingblock.Mover, movingblock.Input]) *MovingBlockSystem {
	if def == nil {
		def = movingblock.NewDefinition()
	}
	return &MovingBlockSystem{def: def}
}

func (s *MovingBlockSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.MovingBlockComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, mb *component.MovingBlock, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		if mb.Machine == nil && !s.start(e, mb, body) {
			return
		}

		if req, ok := ecs.Get(w, e, component.BlockActivateRequestComponent.Kind()); ok {
			mb.Machine.Post(movingblock.Activate(movingblock.Input{DirX: req.DirX, DirY: req.DirY, Speed: req.Speed}))
			ecs.Remove(w, e, component.BlockActivateRequestComponent.Kind())
		}
		if hit, ok := ecs.Get(w, e, component.WallHitComponent.Kind()); ok {
			for i := 0; i < hit.Count; i++ {
				mb.Machine.Post(movingblock.WallHit())
			}
			mb.HitNormalX, mb.HitNormalY = hit.NormalX, hit.NormalY
			mb.HitCount += hit.Count
			ecs.Remove(w, e, component.WallHitComponent.Kind())
		}

		if err := mb.Machine.Step(); err != nil {
			log.Printf("moving_block: entity=%v state=%s step error: %v", e, mb.Machine.Current(), err)
			mb.LastError = err.Error()
		}
	})
}

func (s *MovingBlockSystem) start(e ecs.Entity, mb *component.MovingBlock, body *component.PhysicsBody) bool {
	mb.Mover = movingblock.NewBodyMover(body.Body, mb.Tuning)
	m, err := movingblock.NewFrom(s.def, mb.Mover)
	if err != nil {
		log.Printf("moving_block: entity=%v start error: %v", e, err)
		mb.LastError = err.Error()
		return false
	}
	m.SetLogger(slog.Default().With("entity", e.String()))
	mb.Machine = m
	return true
}

// Retune applies new tuning to every block built from prefab. Blocks keep
// their rest position and current state.
func (s *MovingBlockSystem) Retune(w *ecs.World, prefab string, tune func(mb *component.MovingBlock) movingblock.Tuning) int {
	n := 0
	ecs.ForEach(w, component.MovingBlockComponent.Kind(), func(e ecs.Entity, mb *component.MovingBlock) {
		if mb.Prefab != prefab {
			return
		}
		mb.Tuning = tune(mb)
		if mb.Mover != nil {
			mb.Mover.Retune(mb.Tuning)
		}
		n++
	})
	return n
}
