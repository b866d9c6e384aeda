// Package fsm is a small typed finite state machine for per-entity behaviour
// driven by a fixed simulation tick.
//
// A Machine owns exactly one live State. States are created by the factory
// registered for their StateID on every transition, receive a back-reference
// to the machine before Enter and lose it after Exit.
package fsm

// StateID identifies a registered state variant.
type StateID string

// EventID identifies an event delivered through Notify.
type EventID string

// Event is an external notification for the current state. Data is an
// optional payload the handling state may type-assert.
type Event struct {
	ID   EventID
	Data any
}

// State is one mode of an entity's behaviour. C is the capability the
// machine was built with, I the transition input type.
//
// Implementations embed Base, which supplies the back-reference and no-op
// defaults for every hook.
type State[C, I any] interface {
	Enter(input I) error
	Exit() error
	Tick() error

	bind(m *Machine[C, I], id StateID)
	unbind()
}

// EventHandler is implemented by states that react to events. Returning
// false reports the event as unhandled, which is not an error.
type EventHandler interface {
	HandleEvent(ev Event) (bool, error)
}

// Factory builds a fresh state instance.
type Factory[C, I any] func() State[C, I]

// Base carries the non-owning back-reference from a state to its machine.
// It is only valid between Enter and Exit.
type Base[C, I any] struct {
	machine *Machine[C, I]
	id      StateID
}

func (b *Base[C, I]) bind(m *Machine[C, I], id StateID) {
	b.machine = m
	b.id = id
}

func (b *Base[C, I]) unbind() {
	b.machine = nil
}

func (b *Base[C, I]) Enter(I) error { return nil }
func (b *Base[C, I]) Exit() error   { return nil }
func (b *Base[C, I]) Tick() error   { return nil }

// ID returns the id this state was registered under.
func (b *Base[C, I]) ID() StateID {
	return b.id
}

// Live reports whether the state is between Enter and Exit.
func (b *Base[C, I]) Live() bool {
	return b.machine != nil
}

// Machine returns the owning machine, or nil once the state has exited.
func (b *Base[C, I]) Machine() *Machine[C, I] {
	return b.machine
}

// Capability returns the machine's capability. Only the live state may
// obtain it.
func (b *Base[C, I]) Capability() (C, error) {
	var zero C
	if b.machine == nil {
		return zero, ErrNotLive
	}
	if !b.machine.hasCapability {
		return zero, &CapabilityUnavailableError{Machine: b.machine.def.name, State: b.id}
	}
	return b.machine.capability, nil
}

// Transition asks the owning machine to move to another state.
func (b *Base[C, I]) Transition(to StateID, input I) error {
	if b.machine == nil {
		return ErrNotLive
	}
	return b.machine.Transition(to, input)
}
