// Package movingblock is the behaviour of a hazard block that zooms out
// along an axis when activated and returns to where it started.
package movingblock

import (
	"github.com/milk9111/molten/fsm"
)

const (
	StateIdle      fsm.StateID = "idle"
	StateZooming   fsm.StateID = "zooming"
	StateReturning fsm.StateID = "returning"
)

const (
	// EventWallHit is posted when the block's body begins touching a solid.
	EventWallHit fsm.EventID = "wall_hit"
	// EventActivate starts a zoom from Idle. Data may carry an Input.
	EventActivate fsm.EventID = "activate"
)

const DefinitionName = "moving_block"

// Mover is the movement capability a block's states command.
type Mover interface {
	Stop()
	BeginZoom()
	Decelerate()
	IsAtZoomEnd() bool
	IsAtStart() bool
}

// Aimer is implemented by movers that accept a per-zoom direction or speed.
type Aimer interface {
	Aim(dx, dy, speed float64)
}

// Input parameterises a zoom. Zero fields keep the mover's configured values.
type Input struct {
	DirX  float64
	DirY  float64
	Speed float64
}

// Machine is a moving block's state machine.
type Machine = fsm.Machine[Mover, Input]

type base = fsm.Base[Mover, Input]

// Idle holds the block still at rest.
type Idle struct{ base }

func (s *Idle) Enter(Input) error {
	m, err := s.Capability()
	if err != nil {
		return err
	}
	m.Stop()
	return nil
}

func (s *Idle) HandleEvent(ev fsm.Event) (bool, error) {
	// Wall contacts while resting are ignored.
	if ev.ID != EventActivate {
		return false, nil
	}
	in, _ := ev.Data.(Input)
	return true, s.Transition(StateZooming, in)
}

// Zooming drives the block out until it reaches the end of its run or hits
// something.
type Zooming struct{ base }

func (s *Zooming) Enter(in Input) error {
	m, err := s.Capability()
	if err != nil {
		return err
	}
	// every zoom is aimed, so an empty input falls back to the tuning
	if a, ok := m.(Aimer); ok {
		a.Aim(in.DirX, in.DirY, in.Speed)
	}
	m.BeginZoom()
	return nil
}

func (s *Zooming) Tick() error {
	m, err := s.Capability()
	if err != nil {
		return err
	}
	if m.IsAtZoomEnd() {
		return s.Transition(StateReturning, Input{})
	}
	return nil
}

func (s *Zooming) HandleEvent(ev fsm.Event) (bool, error) {
	if ev.ID != EventWallHit {
		return false, nil
	}
	return true, s.Transition(StateReturning, Input{})
}

// Returning pulls the block back to its start. It has no entry action.
type Returning struct{ base }

func (s *Returning) Tick() error {
	m, err := s.Capability()
	if err != nil {
		return err
	}
	m.Decelerate()
	if m.IsAtStart() {
		return s.Transition(StateIdle, Input{})
	}
	return nil
}

func (s *Returning) HandleEvent(ev fsm.Event) (bool, error) {
	if ev.ID != EventWallHit {
		return false, nil
	}
	return true, s.Transition(StateIdle, Input{})
}

// NewDefinition registers the three block states.
func NewDefinition() *fsm.Definition[Mover, Input] {
	return fsm.NewDefinition[Mover, Input](DefinitionName).
		MustRegister(StateIdle, func() fsm.State[Mover, Input] { return &Idle{} }).
		MustRegister(StateZooming, func() fsm.State[Mover, Input] { return &Zooming{} }).
		MustRegister(StateReturning, func() fsm.State[Mover, Input] { return &Returning{} })
}

var definition = NewDefinition()

// New builds a block machine resting in Idle.
func New(mover Mover) (*Machine, error) {
	return NewFrom(definition, mover)
}

// NewFrom is New with a caller supplied definition, for tuned chain or
// history limits.
func NewFrom(def *fsm.Definition[Mover, Input], mover Mover) (*Machine, error) {
	return fsm.New(def, mover, StateIdle, Input{})
}

// Activate is the event that starts a zoom with in.
func Activate(in Input) fsm.Event {
	return fsm.Event{ID: EventActivate, Data: in}
}

// WallHit is the event for a new solid contact.
func WallHit() fsm.Event {
	return fsm.Event{ID: EventWallHit}
}
