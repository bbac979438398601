// Package metrics provides observability for directive ingestion.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directive module.
type Metrics struct {
	// Ingest outcomes by extractor and result ("ok", "error")
	Ingests *prometheus.CounterVec

	// End-to-end ingest latency (extraction + persistence)
	IngestDuration prometheus.Histogram
}

// New creates a Metrics instance with all directive metrics registered.
func New() *Metrics {
	return &Metrics{
		Ingests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "adwatch_directive_ingests_total",
			Help: "Total directive ingest attempts by extractor and outcome",
		}, []string{"extractor", "outcome"}),

		IngestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "adwatch_directive_ingest_duration_seconds",
			Help:    "Duration of directive ingestion including extraction and persistence",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// IncrementIngest records one ingest attempt.
func (m *Metrics) IncrementIngest(extractor, outcome string) {
	if m != nil {
		m.Ingests.WithLabelValues(extractor, outcome).Inc()
	}
}

// ObserveIngestDuration records the total ingest duration.
func (m *Metrics) ObserveIngestDuration(d time.Duration) {
	if m != nil {
		m.IngestDuration.Observe(d.Seconds())
	}
}
