package fsm

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration         = errors.New("fsm: invalid configuration")
	ErrTransitionLoop        = errors.New("fsm: transition chain exceeded cap")
	ErrCapabilityUnavailable = errors.New("fsm: capability unavailable")
	ErrNotLive               = errors.New("fsm: state is not live")
)

// ConfigurationError reports a state that was never registered, or a
// registration that cannot produce a usable state.
type ConfigurationError struct {
	Machine string
	State   StateID
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("fsm: %s: state %q is not registered", e.Machine, e.State)
	}
	return fmt.Sprintf("fsm: %s: state %q: %s", e.Machine, e.State, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// TransitionLoopError is returned when re-entrant transitions inside a single
// Tick/Notify/Transition call exceed the definition's MaxChain.
type TransitionLoopError struct {
	Machine string
	From    StateID
	To      StateID
	Limit   int
}

func (e *TransitionLoopError) Error() string {
	return fmt.Sprintf("fsm: %s: transition %s -> %s exceeds chain limit %d", e.Machine, e.From, e.To, e.Limit)
}

func (e *TransitionLoopError) Is(target error) bool {
	return target == ErrTransitionLoop
}

// CapabilityUnavailableError is returned when a live state asks for the
// machine's capability and none was injected.
type CapabilityUnavailableError struct {
	Machine string
	State   StateID
}

func (e *CapabilityUnavailableError) Error() string {
	return fmt.Sprintf("fsm: %s: state %s: capability unavailable", e.Machine, e.State)
}

func (e *CapabilityUnavailableError) Is(target error) bool {
	return target == ErrCapabilityUnavailable
}

// TransitionError wraps an error raised by a state's Enter or Exit hook.
type TransitionError struct {
	From  StateID
	To    StateID
	Phase string
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("fsm: transition %s -> %s: %s: %v", e.From, e.To, e.Phase, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// wrapHookError attaches transition context unless err already carries a
// framework error, so nested chains don't stack wrappers.
func wrapHookError(from, to StateID, phase string, err error) error {
	if err == nil {
		return nil
	}
	var te *TransitionError
	if errors.As(err, &te) || errors.Is(err, ErrTransitionLoop) || errors.Is(err, ErrConfiguration) {
		return err
	}
	return &TransitionError{From: from, To: to, Phase: phase, Err: err}
}

// errorKind is the metrics label for err.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrTransitionLoop):
		return "transition_loop"
	case errors.Is(err, ErrCapabilityUnavailable):
		return "capability_unavailable"
	case errors.Is(err, ErrNotLive):
		return "not_live"
	default:
		return "hook"
	}
}
