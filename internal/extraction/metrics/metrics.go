package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the extraction pipeline.
type Metrics struct {
	// Extraction attempts by extractor and outcome ("ok", "miss", "error")
	Attempts *prometheus.CounterVec

	// Fallback invocations by trigger ("no_extractor", "pattern_failure")
	Fallbacks *prometheus.CounterVec

	// Terminal failures by error category
	Failures *prometheus.CounterVec

	// Cache lookups by result ("hit", "miss")
	CacheLookups *prometheus.CounterVec

	// Extraction latency by extractor
	Duration *prometheus.HistogramVec
}

// New creates a Metrics instance with all extraction metrics registered.
func New() *Metrics {
	return &Metrics{
		Attempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "adwatch_extraction_attempts_total",
			Help: "Total extraction attempts by extractor and outcome",
		}, []string{"extractor", "outcome"}),

		Fallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "adwatch_extraction_fallbacks_total",
			Help: "Language-model fallback invocations by trigger",
		}, []string{"trigger"}),

		Failures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "adwatch_extraction_failures_total",
			Help: "Terminal extraction failures by error category",
		}, []string{"category"}),

		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "adwatch_extraction_cache_lookups_total",
			Help: "Extraction cache lookups by result",
		}, []string{"result"}),

		Duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "adwatch_extraction_duration_seconds",
			Help:    "Duration of extraction attempts by extractor",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"extractor"}),
	}
}

// IncrementAttempt records one extraction attempt.
func (m *Metrics) IncrementAttempt(extractor, outcome string) {
	if m != nil {
		m.Attempts.WithLabelValues(extractor, outcome).Inc()
	}
}

// IncrementFallback records a fallback invocation.
func (m *Metrics) IncrementFallback(trigger string) {
	if m != nil {
		m.Fallbacks.WithLabelValues(trigger).Inc()
	}
}

// IncrementFailure records a terminal extraction failure.
func (m *Metrics) IncrementFailure(category string) {
	if m != nil {
		m.Failures.WithLabelValues(category).Inc()
	}
}

// IncrementCacheLookup records a cache hit or miss.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

// ObserveDuration records one extractor's run time.
func (m *Metrics) ObserveDuration(extractor string, d time.Duration) {
	if m != nil {
		m.Duration.WithLabelValues(extractor).Observe(d.Seconds())
	}
}
