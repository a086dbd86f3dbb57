package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"admin-request-engine/pkg/constants"
)

const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultConflict = "conflict"
)

var (
	RequestsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "requests",
		Subsystem: "lifecycle",
		Name:      "created_total",
		Help:      "Total number of created requests broken down by type and priority.",
	}, []string{"type", "priority"})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "requests",
		Subsystem: "lifecycle",
		Name:      "transitions_total",
		Help:      "Total number of status transition attempts broken down by from, to and result.",
	}, []string{"from", "to", "result"})

	IdempotentReplays = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "requests",
		Subsystem: "api",
		Name:      "idempotent_replays_total",
		Help:      "Total number of create calls answered from the idempotency cache, by outcome.",
	}, []string{"result"})
)

func ObserveTransition(from, to constants.RequestStatus, result string) {
	StatusTransitions.WithLabelValues(string(from), string(to), result).Inc()
}
