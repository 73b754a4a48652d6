package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart decisions and storage health.
type CartMetrics struct {
	duration        *prometheus.HistogramVec
	outcomes        *prometheus.CounterVec
	storageFailures *prometheus.CounterVec
	loadRecoveries  prometheus.Counter
}

// NewCartMetrics registers the cart metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_operation_duration_seconds",
		Help:    "Duration of cart operations in seconds, storage round-trips included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operation_outcomes_total",
		Help: "Cart operations by resulting outcome.",
	}, []string{"outcome"})
	storageFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_storage_failures_total",
		Help: "Durable storage failures by operation.",
	}, []string{"op"})
	loadRecoveries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_load_recoveries_total",
		Help: "Persisted carts discarded because they could not be decoded.",
	})
	reg.MustRegister(duration, outcomes, storageFailures, loadRecoveries)
	return &CartMetrics{
		duration:        duration,
		outcomes:        outcomes,
		storageFailures: storageFailures,
		loadRecoveries:  loadRecoveries,
	}
}

// ObserveDuration records how long the named cart operation took.
func (c *CartMetrics) ObserveDuration(op string, d time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(op)).Observe(d.Seconds())
}

// IncOutcome counts one operation with the given outcome.
func (c *CartMetrics) IncOutcome(outcome string) {
	if c == nil || c.outcomes == nil {
		return
	}
	c.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncStorageFailure counts a failed load, save or delete.
func (c *CartMetrics) IncStorageFailure(op string) {
	if c == nil || c.storageFailures == nil {
		return
	}
	c.storageFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncLoadRecovery counts a malformed snapshot replaced by an empty cart.
func (c *CartMetrics) IncLoadRecovery() {
	if c == nil || c.loadRecoveries == nil {
		return
	}
	c.loadRecoveries.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
