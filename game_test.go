package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/ecs/entity"
	"github.com/milk9111/molten/ecs/system"
	"github.com/milk9111/molten/levels"
	"github.com/milk9111/molten/movingblock"
	"github.com/milk9111/molten/prefabs"
)

func newTestGame(t *testing.T) (*Game, ecs.Entity) {
	t.Helper()

	p := &entity.Prefabs{
		Player: prefabs.PlayerSpec{MoveSpeed: 1, JumpSpeed: 1, Width: 10, Height: 20},
		Blocks: map[string]prefabs.MovingBlockSpec{
			prefabs.MovingBlockFile: {Width: 16, Height: 16, DirX: 1, Distance: 64, ZoomSpeed: 100},
		},
	}
	lvl := &levels.Level{
		Spawn:  levels.Point{X: 20, Y: 20},
		Rooms:  []levels.Room{{Name: "a", Rect: levels.Rect{W: 640, H: 360}}},
		Blocks: []levels.Block{{X: 200, Y: 100}},
	}

	w := ecs.NewWorld()
	_, err := entity.LoadLevel(w, lvl, p)
	require.NoError(t, err)

	g := &Game{
		world:      w,
		prefabs:    p,
		render:     system.NewRenderSystem(),
		activation: system.NewActivationSystem(),
		blocks:     system.NewMovingBlockSystem(nil),
	}
	system.NewPhysicsSystem(0).Update(w)
	g.blocks.Update(w)

	block, ok := w.First(component.MovingBlockComponent.Kind())
	require.True(t, ok)
	return g, block
}

func TestActivateAllStartsIdleBlocks(t *testing.T) {
	g, block := newTestGame(t)

	g.activateAll()
	require.True(t, ecs.Has(g.world, block, component.BlockActivateRequestComponent.Kind()))
	g.blocks.Update(g.world)

	mb, _ := ecs.Get(g.world, block, component.MovingBlockComponent.Kind())
	assert.Equal(t, movingblock.StateZooming, mb.Machine.Current())

	// a zooming block is left alone
	g.activateAll()
	assert.False(t, ecs.Has(g.world, block, component.BlockActivateRequestComponent.Kind()))

	assert.Contains(t, g.blockSummary(), "zooming")
	trace := g.traceText()
	assert.Contains(t, trace, "<start> -> idle")
	assert.Contains(t, trace, "idle -> zooming")
	assert.True(t, strings.HasPrefix(trace, "# block "))
}

func TestReloadPlayerSpec(t *testing.T) {
	g, _ := newTestGame(t)
	want, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)

	g.reload(prefabs.PlayerFile)

	_, p, ok := ecs.First(g.world, component.PlayerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, want.MoveSpeed, p.MoveSpeed)
	assert.Equal(t, want.JumpSpeed, p.JumpSpeed)
}

func TestReloadBlockSpecRetunes(t *testing.T) {
	g, block := newTestGame(t)
	want, err := prefabs.LoadMovingBlockSpec()
	require.NoError(t, err)

	g.reload(prefabs.MovingBlockFile)

	mb, _ := ecs.Get(g.world, block, component.MovingBlockComponent.Kind())
	assert.Equal(t, want.ZoomSpeed, mb.Mover.Tuning().ZoomSpeed)
	assert.Equal(t, "retuned 1 blocks from "+prefabs.MovingBlockFile, g.status)
}

func TestReloadIgnoresUnknownFiles(t *testing.T) {
	g, _ := newTestGame(t)

	g.reload("unrelated.yaml")
	assert.Empty(t, g.status)
}

func TestBlockSummaryShowsLastContact(t *testing.T) {
	g, block := newTestGame(t)

	assert.NotContains(t, g.blockSummary(), "hits:")

	g.activateAll()
	g.blocks.Update(g.world)
	require.NoError(t, ecs.Add(g.world, block, component.WallHitComponent.Kind(), &component.WallHit{Count: 1, NormalX: -1}))
	g.blocks.Update(g.world)

	assert.Contains(t, g.blockSummary(), "hits: 1 n=(-1.0, 0.0)")
}
