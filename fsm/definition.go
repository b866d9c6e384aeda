package fsm

import "sort"

const DefaultMaxChain = 8

// Definition is the closed set of state variants a machine may enter.
// It is shared by every machine built from it and must be fully registered
// before the first machine is created.
type Definition[C, I any] struct {
	name      string
	factories map[StateID]Factory[C, I]

	// MaxChain caps the number of transitions within one outermost
	// Tick/Notify/Transition/Step call.
	MaxChain int
	// HistorySize is the number of transition records each machine keeps.
	HistorySize int
}

func NewDefinition[C, I any](name string) *Definition[C, I] {
	return &Definition[C, I]{
		name:        name,
		factories:   make(map[StateID]Factory[C, I]),
		MaxChain:    DefaultMaxChain,
		HistorySize: 32,
	}
}

func (d *Definition[C, I]) Name() string {
	return d.name
}

// Register adds a state variant.
func (d *Definition[C, I]) Register(id StateID, factory Factory[C, I]) error {
	if id == "" {
		return &ConfigurationError{Machine: d.name, State: id, Reason: "empty state id"}
	}
	if factory == nil {
		return &ConfigurationError{Machine: d.name, State: id, Reason: "nil factory"}
	}
	if _, ok := d.factories[id]; ok {
		return &ConfigurationError{Machine: d.name, State: id, Reason: "registered twice"}
	}
	d.factories[id] = factory
	return nil
}

// MustRegister is Register for package-level setup.
func (d *Definition[C, I]) MustRegister(id StateID, factory Factory[C, I]) *Definition[C, I] {
	if err := d.Register(id, factory); err != nil {
		panic(err)
	}
	return d
}

// Has reports whether id is registered.
func (d *Definition[C, I]) Has(id StateID) bool {
	_, ok := d.factories[id]
	return ok
}

// States returns the registered ids in sorted order.
func (d *Definition[C, I]) States() []StateID {
	out := make([]StateID, 0, len(d.factories))
	for id := range d.factories {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate checks every factory produces a state, so broken registrations
// surface at setup rather than mid-game.
func (d *Definition[C, I]) Validate() error {
	if len(d.factories) == 0 {
		return &ConfigurationError{Machine: d.name, Reason: "no states registered"}
	}
	if d.MaxChain <= 0 {
		return &ConfigurationError{Machine: d.name, Reason: "max chain must be positive"}
	}
	for _, id := range d.States() {
		if d.factories[id]() == nil {
			return &ConfigurationError{Machine: d.name, State: id, Reason: "factory returned nil"}
		}
	}
	return nil
}

func (d *Definition[C, I]) build(id StateID) (State[C, I], error) {
	factory, ok := d.factories[id]
	if !ok {
		return nil, &ConfigurationError{Machine: d.name, State: id}
	}
	s := factory()
	if s == nil {
		return nil, &ConfigurationError{Machine: d.name, State: id, Reason: "factory returned nil"}
	}
	return s, nil
}
