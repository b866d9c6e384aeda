package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/levels"
	"github.com/milk9111/molten/liquid"
	"github.com/milk9111/molten/prefabs"
)

func testLevel() *levels.Level {
	return &levels.Level{
		Name:  "test",
		Spawn: levels.Point{X: 40, Y: 100},
		Rooms: []levels.Room{
			{Name: "a", Rect: levels.Rect{W: 320, H: 180}},
			{Name: "b", Rect: levels.Rect{X: 320, W: 320, H: 180}},
		},
		Walls: []levels.Rect{{Y: 164, W: 640, H: 16}},
		Blocks: []levels.Block{
			{X: 200, Y: 132},
			{X: 400, Y: 40, DirY: 1, Distance: 96},
		},
		Pools: []levels.Liquid{{Room: "b", Rect: levels.Rect{X: 500, Y: 150, W: 60, H: 14}}},
	}
}

func testPrefabs() *Prefabs {
	return &Prefabs{
		Player: prefabs.PlayerSpec{MoveSpeed: 100, JumpSpeed: 200, Width: 10, Height: 20},
		Liquid: prefabs.LiquidSpec{Glow: 2},
		Blocks: map[string]prefabs.MovingBlockSpec{
			prefabs.MovingBlockFile: {
				Width: 16, Height: 16, Mass: 50,
				DirX: 1, Distance: 64, ZoomSpeed: 300,
				Activation: prefabs.ActivationSpec{Script: "scripts/activate.tengo", Range: 80, Cooldown: 10},
			},
		},
		Surface: liquid.NewMaterial("surface", nil),
	}
}

func TestLoadLevel(t *testing.T) {
	w := ecs.NewWorld()

	player, err := LoadLevel(w, testLevel(), testPrefabs())
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, player, component.PlayerTagComponent.Kind()))
	tr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 40.0, tr.X)
	assert.Equal(t, 100.0, tr.Y)

	assert.Len(t, w.Query(component.RoomComponent.Kind()), 2)
	assert.Len(t, w.Query(component.WallTagComponent.Kind()), 1)
	assert.Len(t, w.Query(component.LiquidPoolComponent.Kind()), 1)

	blocks := w.Query(component.MovingBlockComponent.Kind())
	require.Len(t, blocks, 2)

	first, _ := ecs.Get(w, blocks[0], component.MovingBlockComponent.Kind())
	assert.Equal(t, prefabs.MovingBlockFile, first.Prefab)
	assert.Equal(t, 1.0, first.Tuning.DirX)
	assert.Equal(t, 64.0, first.Tuning.Distance)

	second, _ := ecs.Get(w, blocks[1], component.MovingBlockComponent.Kind())
	assert.Equal(t, 0.0, second.Tuning.DirX)
	assert.Equal(t, 1.0, second.Tuning.DirY)
	assert.Equal(t, 96.0, second.Tuning.Distance)

	body, ok := ecs.Get(w, blocks[0], component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	assert.True(t, body.NoGravity)
	assert.Equal(t, component.BodyRoleBlock, body.Role)
	assert.Zero(t, body.Friction)
	assert.Equal(t, 50.0, body.Mass)

	trig, ok := ecs.Get(w, blocks[0], component.ActivationTriggerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 80.0, trig.Range)
}

func TestLoadLevelRequiresInputs(t *testing.T) {
	_, err := LoadLevel(ecs.NewWorld(), nil, testPrefabs())
	assert.Error(t, err)
}

func TestLoadLevelUnknownBlockPrefab(t *testing.T) {
	lvl := testLevel()
	lvl.Blocks[0].Prefab = "missing_block.yaml"

	_, err := LoadLevel(ecs.NewWorld(), lvl, testPrefabs())
	assert.Error(t, err)
}

func TestLiquidPoolMaterial(t *testing.T) {
	w := ecs.NewWorld()
	surface := liquid.NewMaterial("surface", nil)

	e, err := NewLiquidPool(w, surface, prefabs.LiquidSpec{Glow: 1.5}, levels.Liquid{
		Room: "b",
		Rect: levels.Rect{X: 10, Y: 20, W: 30, H: 8},
	})
	require.NoError(t, err)

	pool, ok := ecs.Get(w, e, component.LiquidPoolComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, pool.Material)
	assert.NotSame(t, surface, pool.Material)

	rect, ok := pool.Material.Vector("Pool")
	require.True(t, ok)
	assert.Equal(t, []float64{10, 20, 30, 8}, rect)

	tint, ok := pool.Material.Vector("Tint")
	require.True(t, ok)
	assert.InDelta(t, 1.0, tint[0], 1e-6)
	assert.InDelta(t, 0x45/255.0, tint[1], 1e-6)
	assert.InDelta(t, 1.5, pool.Material.Uniforms["Glow"], 1e-6)

	_, surfaceHasPool := surface.Vector("Pool")
	assert.False(t, surfaceHasPool)

	ents, mats := PoolMaterials(w)
	assert.Equal(t, []ecs.Entity{e}, ents)
	assert.Equal(t, []*liquid.Material{pool.Material}, mats)
}
