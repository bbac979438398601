// Package metrics provides observability for applicability evaluation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the evaluation module.
type Metrics struct {
	// Evaluation outcomes by reason code
	Evaluations *prometheus.CounterVec

	// Fleet sizes submitted to batch evaluation
	FleetSize prometheus.Histogram

	// End-to-end fleet evaluation latency (evaluation + persistence)
	FleetDuration prometheus.Histogram
}

// New creates a Metrics instance with all evaluation metrics registered.
func New() *Metrics {
	return &Metrics{
		Evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "adwatch_evaluations_total",
			Help: "Total applicability evaluations by reason code",
		}, []string{"reason_code"}),

		FleetSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "adwatch_evaluation_fleet_size",
			Help:    "Number of configurations per fleet evaluation request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),

		FleetDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "adwatch_evaluation_fleet_duration_seconds",
			Help:    "Duration of fleet evaluation including persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementEvaluation records one evaluation outcome.
func (m *Metrics) IncrementEvaluation(reasonCode string) {
	if m != nil {
		m.Evaluations.WithLabelValues(reasonCode).Inc()
	}
}

// ObserveFleet records fleet size and total evaluation duration.
func (m *Metrics) ObserveFleet(size int, d time.Duration) {
	if m != nil {
		m.FleetSize.Observe(float64(size))
		m.FleetDuration.Observe(d.Seconds())
	}
}
