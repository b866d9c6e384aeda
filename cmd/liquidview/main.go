// Command liquidview previews the liquid surface with the cursor standing in
// for the player. Edit prefabs/liquid.yaml and press R to reload it.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/molten/common"
	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/ecs/entity"
	"github.com/milk9111/molten/levels"
	"github.com/milk9111/molten/liquid"
	"github.com/milk9111/molten/prefabs"
)

const (
	screenWidth  = common.BaseWidth
	screenHeight = common.BaseHeight
)

var poolRect = levels.Rect{X: 40, Y: 220, W: screenWidth - 80, H: 100}

type Game struct {
	world *ecs.World
	sim   *liquid.Simulation

	started bool
	x, y    float64
}

func NewGame() (*Game, error) {
	spec, err := prefabs.LoadLiquidSpec()
	if err != nil {
		return nil, err
	}
	simShader, err := liquid.LoadShader(liquid.SimulationShader)
	if err != nil {
		return nil, err
	}
	surfaceShader, err := liquid.LoadShader(liquid.SurfaceShader)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	if _, err := entity.NewLiquidPool(w, liquid.NewMaterial("liquid_surface", surfaceShader), spec, levels.Liquid{Room: "preview", Rect: poolRect}); err != nil {
		return nil, err
	}
	pools, materials := entity.PoolMaterials(w)
	sim, err := liquid.New(spec.Config(), liquid.NewMaterial("liquid_simulation", simShader), materials...)
	if err != nil {
		return nil, err
	}
	entity.BindPools(w, pools, sim)

	return &Game{world: w, sim: sim}, nil
}

func (g *Game) reload() {
	spec, err := prefabs.LoadLiquidSpec()
	if err != nil {
		log.Printf("reload liquid: %v", err)
		return
	}
	g.sim.Retune(spec.Config())
	ecs.ForEach(g.world, component.LiquidPoolComponent.Kind(), func(e ecs.Entity, pool *component.LiquidPool) {
		entity.TintPool(pool, spec)
	})
}

func (g *Game) Update() error {
	if !g.started {
		g.sim.OnRoomTransition(liquid.Rect{W: screenWidth, H: screenHeight})
		g.started = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
		g.sim.OnRoomTransition(liquid.Rect{W: screenWidth, H: screenHeight})
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	vx, vy := (x-g.x)*common.TPS, (y-g.y)*common.TPS
	g.x, g.y = x, y

	g.sim.Update(x, y, vx, vy)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x14, 0x10, 0x0e, 0xff})
	vector.StrokeRect(screen, float32(poolRect.X), float32(poolRect.Y), float32(poolRect.W), float32(poolRect.H), 1, color.RGBA{0x50, 0x50, 0x50, 0xff}, false)
	g.sim.Draw(screen, 0, 0)

	imp := g.sim.Impulse()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("impulse: %.3f %.3f %.3f\nR: reload liquid.yaml", imp[0], imp[1], imp[2]))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.StringVar(&prefabs.Dir, "prefabs", prefabs.Dir, "directory checked for prefab overrides")
	flag.Parse()

	game, err := NewGame()
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("liquid preview")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
