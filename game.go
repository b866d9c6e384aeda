package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/molten/common"
	"github.com/milk9111/molten/config"
	"github.com/milk9111/molten/ecs"
	"github.com/milk9111/molten/ecs/component"
	"github.com/milk9111/molten/ecs/entity"
	"github.com/milk9111/molten/ecs/system"
	"github.com/milk9111/molten/fsm"
	"github.com/milk9111/molten/levels"
	"github.com/milk9111/molten/liquid"
	"github.com/milk9111/molten/movingblock"
	"github.com/milk9111/molten/prefabs"
)

var backgroundColor = color.RGBA{0x14, 0x10, 0x0e, 0xff}

type Game struct {
	cfg    config.Runtime
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	prefabs   *entity.Prefabs

	render     *system.RenderSystem
	activation *system.ActivationSystem
	blocks     *system.MovingBlockSystem
	liquid     *system.LiquidSystem

	watcher *prefabs.Watcher

	debug      bool
	debugUI    *ebitenui.UI
	debugLabel *widget.Text
	status     string
	clipReady  bool
}

func NewGame(cfg config.Runtime) (*Game, error) {
	p, err := loadPrefabs()
	if err != nil {
		return nil, err
	}

	lvl, err := levels.Load(cfg.Level)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	if _, err := entity.LoadLevel(world, lvl, p); err != nil {
		return nil, fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	if _, err := entity.NewCamera(world, common.BaseWidth, common.BaseHeight); err != nil {
		return nil, err
	}

	simShader, err := liquid.LoadShader(liquid.SimulationShader)
	if err != nil {
		return nil, err
	}
	pools, materials := entity.PoolMaterials(world)
	sim, err := liquid.New(p.Liquid.Config(), liquid.NewMaterial("liquid_simulation", simShader), materials...)
	if err != nil {
		return nil, err
	}
	entity.BindPools(world, pools, sim)

	def := movingblock.NewDefinition()
	def.MaxChain = cfg.MaxChain
	def.HistorySize = cfg.HistorySize

	g := &Game{
		cfg:        cfg,
		world:      world,
		prefabs:    p,
		render:     system.NewRenderSystem(),
		activation: system.NewActivationSystem(),
		blocks:     system.NewMovingBlockSystem(def),
		liquid:     system.NewLiquidSystem(sim),
		debug:      cfg.Debug,
	}
	g.render.Labels = cfg.Debug

	// wall hits found by physics are handled by the block system on the
	// next update, before the block machines tick
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPlayerControllerSystem(),
		g.activation,
		g.blocks,
		system.NewPhysicsSystem(common.Step),
		system.NewRoomSystem(),
		g.liquid,
	)

	if cfg.Watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("prefab watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.debugUI = NewDebugUI(g)
	return g, nil
}

func loadPrefabs() (*entity.Prefabs, error) {
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	liquidSpec, err := prefabs.LoadLiquidSpec()
	if err != nil {
		return nil, err
	}
	block, err := prefabs.LoadMovingBlockSpec()
	if err != nil {
		return nil, err
	}
	surfaceShader, err := liquid.LoadShader(liquid.SurfaceShader)
	if err != nil {
		return nil, err
	}

	return &entity.Prefabs{
		Player:  player,
		Liquid:  liquidSpec,
		Blocks:  map[string]prefabs.MovingBlockSpec{prefabs.MovingBlockFile: block},
		Surface: liquid.NewMaterial("liquid_surface", surfaceShader),
	}, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
		g.render.Labels = g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyTrace()
	}

	g.drainWatcher()
	g.scheduler.Update(g.world)

	if g.debug {
		g.debugLabel.Label = g.blockSummary()
		g.debugUI.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	g.render.Draw(g.world, screen)
	camX, camY := g.render.Camera(g.world)
	g.liquid.Draw(screen, camX, camY)

	if !g.debug {
		return
	}
	room := ""
	if player, ok := g.world.First(component.PlayerTagComponent.Kind()); ok {
		if cur, ok := ecs.Get(g.world, player, component.CurrentRoomComponent.Kind()); ok {
			room = cur.Name
		}
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  room: %s", ebiten.ActualFPS(), room))
	g.debugUI.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefab watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case strings.HasPrefix(name, "scripts/"):
		g.activation.Invalidate(name)
		g.setStatus("reloaded %s", name)
	case name == prefabs.LiquidFile:
		spec, err := prefabs.LoadLiquidSpec()
		if err != nil {
			g.setStatus("reload %s: %v", name, err)
			return
		}
		g.prefabs.Liquid = spec
		g.liquid.Simulation().Retune(spec.Config())
		ecs.ForEach(g.world, component.LiquidPoolComponent.Kind(), func(e ecs.Entity, pool *component.LiquidPool) {
			entity.TintPool(pool, spec)
		})
		g.setStatus("reloaded %s", name)
	case name == prefabs.PlayerFile:
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			g.setStatus("reload %s: %v", name, err)
			return
		}
		g.prefabs.Player = spec
		ecs.ForEach(g.world, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
			p.MoveSpeed, p.JumpSpeed = spec.MoveSpeed, spec.JumpSpeed
		})
		g.setStatus("reloaded %s", name)
	default:
		if _, ok := g.prefabs.Blocks[name]; !ok {
			return
		}
		spec, err := prefabs.LoadSpec[prefabs.MovingBlockSpec](name)
		if err != nil {
			g.setStatus("reload %s: %v", name, err)
			return
		}
		g.prefabs.Blocks[name] = spec
		n := g.blocks.Retune(g.world, name, func(mb *component.MovingBlock) movingblock.Tuning {
			return mb.Apply(spec.Tuning(common.Step))
		})
		ecs.ForEach2(g.world, component.ActivationTriggerComponent.Kind(), component.MovingBlockComponent.Kind(), func(e ecs.Entity, trig *component.ActivationTrigger, mb *component.MovingBlock) {
			if mb.Prefab != name {
				return
			}
			trig.Script, trig.Range, trig.Cooldown = spec.Activation.Script, spec.Activation.Range, spec.Activation.Cooldown
		})
		g.setStatus("retuned %d blocks from %s", n, name)
	}
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	log.Print(g.status)
}

// activateAll files an activate request for every idle block.
func (g *Game) activateAll() {
	ecs.ForEach(g.world, component.MovingBlockComponent.Kind(), func(e ecs.Entity, mb *component.MovingBlock) {
		if mb.Machine == nil || !mb.Machine.Is(movingblock.StateIdle) {
			return
		}
		_ = ecs.Add(g.world, e, component.BlockActivateRequestComponent.Kind(), &component.BlockActivateRequest{})
	})
}

func (g *Game) blockSummary() string {
	var b strings.Builder
	ecs.ForEach(g.world, component.MovingBlockComponent.Kind(), func(e ecs.Entity, mb *component.MovingBlock) {
		if mb.Machine == nil {
			fmt.Fprintf(&b, "block %v: not started\n", e)
			return
		}
		fmt.Fprintf(&b, "block %v: %s (%d ticks)", e, mb.Machine.Current(), mb.Machine.Ticks())
		if mb.HitCount > 0 {
			fmt.Fprintf(&b, " hits: %d n=(%.1f, %.1f)", mb.HitCount, mb.HitNormalX, mb.HitNormalY)
		}
		if mb.LastError != "" {
			fmt.Fprintf(&b, " err: %s", mb.LastError)
		}
		b.WriteByte('\n')
	})
	if g.status != "" {
		b.WriteString(g.status)
	}
	return b.String()
}

func (g *Game) traceText() string {
	var b strings.Builder
	ecs.ForEach(g.world, component.MovingBlockComponent.Kind(), func(e ecs.Entity, mb *component.MovingBlock) {
		if mb.Machine == nil {
			return
		}
		fmt.Fprintf(&b, "# block %v machine=%s\n", e, mb.Machine.ID())
		b.WriteString(fsm.FormatHistory(mb.Machine.History()))
	})
	return b.String()
}

// copyTrace puts every block's transition history on the clipboard.
func (g *Game) copyTrace() {
	if !g.clipReady {
		if err := clipboard.Init(); err != nil {
			g.setStatus("clipboard unavailable: %v", err)
			return
		}
		g.clipReady = true
	}
	clipboard.Write(clipboard.FmtText, []byte(g.traceText()))
	g.setStatus("copied block trace")
}
