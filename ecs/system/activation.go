package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/molten/common"
	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/movingblock"
	"github.com/milk9111/molten/prefabs"
)

// errScriptFailed is returned for a script whose failure was already
// reported.
var errScriptFailed = errors.New("script failed to compile")

var activationInputs = []string{"block_x", "block_y", "player_x", "player_y", "dir_x", "dir_y", "reach"}

// ActivationSystem runs each idle block's trigger script against the player
// position and files a BlockActivateRequest when the script sets activate.
type ActivationSystem struct {
	load     func(name string) ([]byte, error)
	compiled map[string]*tengo.Compiled
	failed   map[string]bool
	logf     func(format string, args ...any)
}

func NewActivationSystem() *ActivationSystem {
	return &ActivationSystem{
		load:     prefabs.LoadScript,
		compiled: map[string]*tengo.Compiled{},
		failed:   map[string]bool{},
		logf:     log.Printf,
	}
}

// Invalidate drops a cached script so the next update reloads it.
func (s *ActivationSystem) Invalidate(script string) {
	delete(s.compiled, script)
	delete(s.failed, script)
}

func (s *ActivationSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
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

	ecs.ForEach2(w, component.ActivationTriggerComponent.Kind(), component.MovingBlockComponent.Kind(), func(e ecs.Entity, trig *component.ActivationTrigger, mb *component.MovingBlock) {
		if mb.Machine == nil || !mb.Machine.Is(movingblock.StateIdle) || trig.Script == "" {
			return
		}
		if ecs.Has(w, e, component.BlockActivateRequestComponent.Kind()) || !trig.Ready() {
			return
		}
		bx, by, ok := entityCenter(w, e)
		if !ok {
			return
		}
		dx, dy := mb.Mover.Direction()

		req, fire, err := s.evaluate(trig.Script, map[string]float64{
			"block_x": bx, "block_y": by,
			"player_x": px, "player_y": py,
			"dir_x": dx, "dir_y": dy,
			"reach": trig.Range,
		})
		if errors.Is(err, errScriptFailed) {
			return
		}
		if err != nil {
			s.logf("activation: entity=%v script %s error: %v", e, trig.Script, err)
			return
		}
		if !fire {
			return
		}
		_ = ecs.Add(w, e, component.BlockActivateRequestComponent.Kind(), req)
		trig.Fired()
	})
}

func (s *ActivationSystem) evaluate(script string, inputs map[string]float64) (*component.BlockActivateRequest, bool, error) {
	compiled, err := s.script(script)
	if err != nil {
		return nil, false, err
	}
	for name, v := range inputs {
		if err := compiled.Set(name, v); err != nil {
			return nil, false, err
		}
	}
	if err := compiled.Run(); err != nil {
		return nil, false, err
	}
	if !compiled.IsDefined("activate") || !compiled.Get("activate").Bool() {
		return nil, false, nil
	}
	req := &component.BlockActivateRequest{}
	if compiled.IsDefined("aim_x") {
		req.DirX = compiled.Get("aim_x").Float()
	}
	if compiled.IsDefined("aim_y") {
		req.DirY = compiled.Get("aim_y").Float()
	}
	if compiled.IsDefined("speed") {
		req.Speed = compiled.Get("speed").Float()
	}
	return req, true, nil
}

func (s *ActivationSystem) script(name string) (*tengo.Compiled, error) {
	if c, ok := s.compiled[name]; ok {
		return c, nil
	}
	if s.failed[name] {
		return nil, fmt.Errorf("%w: %s", errScriptFailed, name)
	}

	src, err := s.load(name)
	if err != nil {
		s.failed[name] = true
		return nil, err
	}
	script := tengo.NewScript(src)
	for _, in := range activationInputs {
		_ = script.Add(in, 0.0)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		s.failed[name] = true
		return nil, err
	}
	s.compiled[name] = compiled
	return compiled, nil
}

// entityCenter returns the center of e's physics box, or its transform when
// it has no body.
func entityCenter(w *ecs.World, e ecs.Entity) (float64, float64, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		x, y := common.Center(t.X, t.Y, body.Width, body.Height)
		return x, y, true
	}
	return t.X, t.Y, true
}
