package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/movingblock"
)

var stateOutline = map[string]color.RGBA{
	string(movingblock.StateIdle):      {0x60, 0x60, 0x60, 0xff},
	string(movingblock.StateZooming):   {0xff, 0xe0, 0x40, 0xff},
	string(movingblock.StateReturning): {0x40, 0xa0, 0xff, 0xff},
}

type RenderSystem struct {
	camEntity ecs.Entity
	// Labels draws each block's state above it.
	Labels bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Camera returns the top-left of the view in world pixels.
func (r *RenderSystem) Camera(w *ecs.World) (float64, float64) {
	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok {
		return cam.X, cam.Y
	}
	return 0, 0
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	camX, camY := r.Camera(w)

	entities := w.Query(component.TransformComponent.Kind(), component.FillComponent.Kind(), component.PhysicsBodyComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		fill, _ := ecs.Get(w, e, component.FillComponent.Kind())
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

		x := float32(t.X - camX)
		y := float32(t.Y - camY)
		bw, bh := float32(body.Width), float32(body.Height)
		vector.DrawFilledRect(screen, x, y, bw, bh, fill.Color, false)

		mb, ok := ecs.Get(w, e, component.MovingBlockComponent.Kind())
		if !ok || mb.Machine == nil {
			continue
		}
		state := string(mb.Machine.Current())
		if c, ok := stateOutline[state]; ok {
			vector.StrokeRect(screen, x+1, y+1, bw-2, bh-2, 2, c, false)
		}
		if r.Labels {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%v %s", e, state), int(x), int(y)-14)
		}
	}
}
