package component

// ActivationTrigger runs a trigger script for an idle block each tick.
type ActivationTrigger struct {
	Script string
	Range  float64
	// Cooldown is the number of ticks to wait after a trigger fires.
	Cooldown int
	wait     int
}

// Ready counts down the cooldown and reports whether the trigger may fire.
func (a *ActivationTrigger) Ready() bool {
	if a.wait > 0 {
		a.wait--
		return false
	}
	return true
}

// Fired starts the cooldown.
func (a *ActivationTrigger) Fired() {
	a.wait = a.Cooldown
}

var ActivationTriggerComponent = NewComponent[ActivationTrigger]()
