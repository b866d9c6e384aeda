package fsm

import (
	"log/slog"
	"reflect"

	"github.com/google/uuid"
)

// Machine drives one entity's behaviour. It is not safe for concurrent use;
// the fixed-step driver calls it from the game loop only.
type Machine[C, I any] struct {
	def *Definition[C, I]
	id  string

	current   State[C, I]
	currentID StateID

	capability    C
	hasCapability bool

	// depth counts nested public calls; chain counts transitions since the
	// outermost one began.
	depth int
	chain int

	queue   []Event
	ticks   uint64
	history *history
	logger  *slog.Logger
}

// New builds a machine and enters initial with input. The capability is
// shared with the caller and never owned by the machine.
func New[C, I any](def *Definition[C, I], capability C, initial StateID, input I) (*Machine[C, I], error) {
	if def == nil {
		return nil, &ConfigurationError{Machine: "<nil>", State: initial, Reason: "nil definition"}
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if !def.Has(initial) {
		return nil, &ConfigurationError{Machine: def.name, State: initial, Reason: "initial state is not registered"}
	}

	id := uuid.NewString()
	m := &Machine[C, I]{
		def:           def,
		id:            id,
		capability:    capability,
		hasCapability: capabilityAvailable(capability),
		history:       newHistory(def.HistorySize),
		logger:        slog.Default().With("machine", def.name, "id", id),
	}
	if err := m.Transition(initial, input); err != nil {
		return nil, err
	}
	return m, nil
}

// ID is a unique id for this machine instance, used in logs.
func (m *Machine[C, I]) ID() string {
	return m.id
}

// Name is the definition name.
func (m *Machine[C, I]) Name() string {
	return m.def.name
}

// SetLogger replaces the machine's logger.
func (m *Machine[C, I]) SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	m.logger = l.With("machine", m.def.name, "id", m.id)
}

// Current returns the id of the live state.
func (m *Machine[C, I]) Current() StateID {
	return m.currentID
}

// Is reports whether id is the live state.
func (m *Machine[C, I]) Is(id StateID) bool {
	return m.currentID == id
}

// Ticks returns the number of Tick calls delivered so far.
func (m *Machine[C, I]) Ticks() uint64 {
	return m.ticks
}

// History returns the most recent transitions, oldest first.
func (m *Machine[C, I]) History() []Record {
	return m.history.records()
}

func (m *Machine[C, I]) begin() {
	if m.depth == 0 {
		m.chain = 0
	}
	m.depth++
}

func (m *Machine[C, I]) end() {
	m.depth--
}

// Transition exits the live state and enters a fresh instance of to.
//
// On an unknown state or an exceeded chain the machine is left untouched.
// If Exit fails the old state stays live. If Enter fails the new state is
// already installed and stays current.
func (m *Machine[C, I]) Transition(to StateID, input I) (err error) {
	m.begin()
	defer m.end()
	defer func() { m.fail(err) }()

	from := m.currentID
	next, err := m.def.build(to)
	if err != nil {
		return err
	}

	m.chain++
	if m.chain > m.def.MaxChain {
		return &TransitionLoopError{Machine: m.def.name, From: from, To: to, Limit: m.def.MaxChain}
	}

	if prev := m.current; prev != nil {
		if err := prev.Exit(); err != nil {
			return wrapHookError(from, to, "exit", err)
		}
		prev.unbind()
	}

	m.current = next
	m.currentID = to
	next.bind(m, to)

	m.history.add(Record{Tick: m.ticks, From: from, To: to})
	transitionsTotal.WithLabelValues(m.def.name, string(from), string(to)).Inc()
	m.logger.Debug("fsm transition", "from", from, "to", to, "tick", m.ticks)

	if err := next.Enter(input); err != nil {
		return wrapHookError(from, to, "enter", err)
	}
	return nil
}

// Tick forwards one fixed-step update to the live state.
func (m *Machine[C, I]) Tick() (err error) {
	m.begin()
	defer m.end()

	m.ticks++
	if m.current == nil {
		return nil
	}
	err = m.current.Tick()
	m.fail(err)
	return err
}

// Notify forwards ev to the live state. States without a handler for ev
// ignore it.
func (m *Machine[C, I]) Notify(ev Event) (err error) {
	m.begin()
	defer m.end()

	if m.current == nil {
		return nil
	}
	h, ok := m.current.(EventHandler)
	if !ok {
		m.unhandled(ev)
		return nil
	}
	handled, err := h.HandleEvent(ev)
	if err != nil {
		m.fail(err)
		return err
	}
	if !handled {
		m.unhandled(ev)
	}
	return nil
}

// Post queues ev for the next Step.
func (m *Machine[C, I]) Post(ev Event) {
	m.queue = append(m.queue, ev)
}

// Pending returns the number of queued events.
func (m *Machine[C, I]) Pending() int {
	return len(m.queue)
}

// Step runs one fixed step: queued events first, in the order posted, then
// exactly one Tick to whichever state is live afterwards. Events posted while
// the step runs wait for the next step. On error the rest of the step
// (remaining events and the tick) is dropped.
func (m *Machine[C, I]) Step() (err error) {
	m.begin()
	defer m.end()
	defer func() { m.fail(err) }()

	events := m.queue
	m.queue = nil
	for _, ev := range events {
		if err := m.Notify(ev); err != nil {
			return err
		}
	}
	return m.Tick()
}

func (m *Machine[C, I]) unhandled(ev Event) {
	unhandledEventsTotal.WithLabelValues(m.def.name, string(m.currentID), string(ev.ID)).Inc()
	m.logger.Debug("fsm event ignored", "state", m.currentID, "event", ev.ID)
}

// fail counts err once, at the outermost call.
func (m *Machine[C, I]) fail(err error) {
	if err == nil || m.depth != 1 {
		return
	}
	errorsTotal.WithLabelValues(m.def.name, errorKind(err)).Inc()
	m.logger.Debug("fsm error", "state", m.currentID, "err", err)
}

// Availability is implemented by capabilities that can exist without the
// resource they wrap.
type Availability interface {
	Available() bool
}

// capabilityAvailable reports false for nil interfaces and for typed nil
// pointers, maps, slices, funcs and channels.
func capabilityAvailable(c any) bool {
	if c == nil {
		return false
	}
	switch v := reflect.ValueOf(c); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return false
		}
	}
	if a, ok := c.(Availability); ok {
		return a.Available()
	}
	return true
}
