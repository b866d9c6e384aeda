package fsm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsm_transitions_total",
		Help: "Total number of state installs by machine definition, from_state and to_state",
	}, []string{"machine", "from_state", "to_state"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsm_errors_total",
		Help: "Total number of errors returned to the driver by machine definition and kind",
	}, []string{"machine", "kind"})

	unhandledEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsm_unhandled_events_total",
		Help: "Total number of events the live state ignored",
	}, []string{"machine", "state", "event"})
)
