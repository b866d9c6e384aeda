// Package liquid runs a ripple simulation over the player's current room and
// draws liquid surfaces that sample it.
package liquid

import (
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var ErrNoSimulationShader = errors.New("liquid: simulation material has no shader")

// Config tunes the simulation.
type Config struct {
	// ImpulseStrength scales the wake left by the player, in [0, 1].
	ImpulseStrength float64
	// Damping multiplies heights each pass.
	Damping float64
	// Radius of the wake in pixels.
	Radius float64
}

func (c Config) withDefaults() Config {
	c.ImpulseStrength = math.Max(0, math.Min(1, c.ImpulseStrength))
	if c.Damping <= 0 || c.Damping > 1 {
		c.Damping = 0.985
	}
	if c.Radius <= 0 {
		c.Radius = 6
	}
	return c
}

// Simulation owns a double-buffered height texture sized to the current room
// and the listener materials that sample it.
type Simulation struct {
	cfg       Config
	sim       *Material
	listeners []*Material

	room        Rect
	hasRoom     bool
	texW, texH  int
	front, back *ebiten.Image
	impulse     [3]float64

	gpu pass
}

// pass owns the GPU side of the simulation.
type pass interface {
	alloc(w, h int) *ebiten.Image
	release(img *ebiten.Image)
	run(sim *Material, dst *ebiten.Image, w, h int)
}

type ebitenPass struct{}

func (ebitenPass) alloc(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(color.Black)
	return img
}

func (ebitenPass) release(img *ebiten.Image) {
	img.Deallocate()
}

func (ebitenPass) run(sim *Material, dst *ebiten.Image, w, h int) {
	dst.Clear()
	sim.DrawRect(dst, w, h, ebiten.GeoM{})
}

// New instantiates the simulation material and every listener prototype.
func New(cfg Config, simMaterial *Material, listeners ...*Material) (*Simulation, error) {
	if simMaterial == nil || simMaterial.Shader == nil {
		return nil, ErrNoSimulationShader
	}
	s := &Simulation{
		cfg: cfg.withDefaults(),
		sim: simMaterial.Instantiate(),
		gpu: ebitenPass{},
	}
	for _, l := range listeners {
		if l == nil {
			continue
		}
		s.listeners = append(s.listeners, l.Instantiate())
	}
	s.sim.SetVector("Impulse", 0, 0, 0)
	s.sim.SetFloat("Damping", s.cfg.Damping)
	s.sim.SetFloat("Radius", s.cfg.Radius)
	return s, nil
}

// Listeners returns the instantiated listener materials.
func (s *Simulation) Listeners() []*Material {
	return s.listeners
}

// Material returns the instantiated simulation material.
func (s *Simulation) Material() *Material {
	return s.sim
}

func (s *Simulation) Config() Config {
	return s.cfg
}

// Retune replaces the config, keeping the current texture.
func (s *Simulation) Retune(cfg Config) {
	s.cfg = cfg.withDefaults()
	s.sim.SetFloat("Damping", s.cfg.Damping)
	s.sim.SetFloat("Radius", s.cfg.Radius)
}

// Room returns the room the texture covers.
func (s *Simulation) Room() (Rect, bool) {
	return s.room, s.hasRoom
}

// TextureSize returns the simulation texture size, zero before the first
// room transition.
func (s *Simulation) TextureSize() (int, int) {
	return s.texW, s.texH
}

// Impulse returns the impulse used by the last Update.
func (s *Simulation) Impulse() [3]float64 {
	return s.impulse
}

// Texture returns the latest simulation output.
func (s *Simulation) Texture() *ebiten.Image {
	return s.front
}

// OnRoomTransition starts a fresh black simulation covering room and points
// every listener at it.
func (s *Simulation) OnRoomTransition(room Rect) {
	w, h := s.applyRoom(room)
	if s.front != nil {
		s.gpu.release(s.front)
		s.gpu.release(s.back)
		s.front, s.back = nil, nil
	}
	if w <= 0 || h <= 0 {
		return
	}
	s.front = s.gpu.alloc(w, h)
	s.back = s.gpu.alloc(w, h)
	for _, l := range s.listeners {
		l.SetTexture(0, s.front)
	}
}

// applyRoom records room and pushes its position and texture size to the
// listeners.
func (s *Simulation) applyRoom(room Rect) (int, int) {
	w, h := textureSize(room)
	s.room = room
	s.hasRoom = true
	s.texW, s.texH = w, h
	for _, l := range s.listeners {
		l.SetVector("RoomPos", room.X, room.Y)
		l.SetVector("RoomSize", float64(w), float64(h))
	}
	return w, h
}

// Update sets the impulse from the player's position and velocity and runs
// one simulation pass. It does nothing before the first room transition.
func (s *Simulation) Update(px, py, vx, vy float64) {
	if s.front == nil {
		return
	}
	if s.hasRoom {
		s.impulse = ComputeImpulse(s.room, s.texW, s.texH, px, py, vx, vy, s.cfg.ImpulseStrength)
	} else {
		s.impulse = [3]float64{}
	}
	s.sim.SetVector("Impulse", s.impulse[0], s.impulse[1], s.impulse[2])

	s.sim.SetTexture(0, s.front)
	s.gpu.run(s.sim, s.back, s.texW, s.texH)
	s.front, s.back = s.back, s.front

	for _, l := range s.listeners {
		l.SetTexture(0, s.front)
	}
}

// Draw draws every listener over the room, offset by the camera.
func (s *Simulation) Draw(screen *ebiten.Image, camX, camY float64) {
	if s.front == nil {
		return
	}
	var geo ebiten.GeoM
	geo.Translate(s.room.X-camX, s.room.Y-camY)
	for _, l := range s.listeners {
		l.DrawRect(screen, s.texW, s.texH, geo)
	}
}
