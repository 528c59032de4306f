// Package metrics provides Prometheus metrics for the entitlement module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the entitlement module's Prometheus collectors.
type Metrics struct {
	decisions *prometheus.CounterVec
}

// New creates and registers entitlement metrics.
func New() *Metrics {
	return &Metrics{
		decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mintgate_entitlement_decisions_total",
			Help: "Entitlement decisions by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
}

// IncrementDecision records one entitlement decision.
func (m *Metrics) IncrementDecision(operation, outcome string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(operation, outcome).Inc()
}
