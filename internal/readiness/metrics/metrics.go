// Package metrics provides Prometheus metrics for the readiness module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the readiness module's Prometheus collectors.
type Metrics struct {
	evaluations      *prometheus.CounterVec
	categoryFailures *prometheus.CounterVec
	cacheHits        prometheus.Counter
	evaluateLatency  prometheus.Histogram
	categoryLatency  *prometheus.HistogramVec
}

// New creates and registers readiness metrics.
func New() *Metrics {
	return &Metrics{
		evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mintgate_readiness_evaluations_total",
			Help: "Readiness evaluations by overall status.",
		}, []string{"status"}),
		categoryFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mintgate_readiness_category_failures_total",
			Help: "Category evaluations that failed at the dependency level.",
		}, []string{"category"}),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mintgate_readiness_cache_hits_total",
			Help: "Readiness evaluations served from the result cache.",
		}),
		evaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mintgate_readiness_evaluate_duration_seconds",
			Help:    "End-to-end readiness evaluation latency.",
			Buckets: prometheus.DefBuckets,
		}),
		categoryLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mintgate_readiness_category_duration_seconds",
			Help:    "Per-category evaluation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"category"}),
	}
}

// IncrementEvaluation records one completed evaluation.
func (m *Metrics) IncrementEvaluation(status string) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(status).Inc()
}

// IncrementCategoryFailure records a dependency-level category failure.
func (m *Metrics) IncrementCategoryFailure(category string) {
	if m == nil {
		return
	}
	m.categoryFailures.WithLabelValues(category).Inc()
}

// IncrementCacheHit records an evaluation served from cache.
func (m *Metrics) IncrementCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// ObserveEvaluateLatency records end-to-end evaluation latency.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.evaluateLatency.Observe(d.Seconds())
}

// ObserveCategoryLatency records one category's evaluation latency.
func (m *Metrics) ObserveCategoryLatency(category string, d time.Duration) {
	if m == nil {
		return
	}
	m.categoryLatency.WithLabelValues(category).Observe(d.Seconds())
}
