package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "room_booking"

// Metrics holds the collectors for the directory cache and the
// recommendation pipeline. A nil *Metrics is valid and records nothing.
type Metrics struct {
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	refreshFailures   prometheus.Counter
	staleServed       prometheus.Counter
	malformedBookings prometheus.Counter
	recommendations   *prometheus.CounterVec
	recommendDuration prometheus.Histogram
	refreshDuration   prometheus.Histogram
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns the instance registered with the global registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		shared = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return shared
}

// MustNewMetrics registers the collectors on reg and panics on conflicts.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "cache_hits_total",
			Help:      "Snapshot lookups served from a fresh cached entry.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "cache_misses_total",
			Help:      "Snapshot lookups that required a refresh.",
		}),
		refreshFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "refresh_failures_total",
			Help:      "Refreshes that failed to load spaces, bookings or hierarchy.",
		}),
		staleServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "stale_served_total",
			Help:      "Lookups answered with a stale snapshot after a failed refresh.",
		}),
		malformedBookings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "malformed_bookings_total",
			Help:      "Bookings excluded from conflict checks because they could not be parsed.",
		}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recommendation",
			Name:      "requests_total",
			Help:      "Recommendation requests by outcome.",
		}, []string{"outcome"}),
		recommendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "recommendation",
			Name:      "duration_seconds",
			Help:      "Time spent producing a recommendation.",
			Buckets:   prometheus.DefBuckets,
		}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "refresh_duration_seconds",
			Help:      "Time spent fetching a directory snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.cacheHits,
		m.cacheMisses,
		m.refreshFailures,
		m.staleServed,
		m.malformedBookings,
		m.recommendations,
		m.recommendDuration,
		m.refreshDuration,
	)
	return m
}

func (m *Metrics) CacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

func (m *Metrics) RefreshFailed() {
	if m != nil {
		m.refreshFailures.Inc()
	}
}

func (m *Metrics) StaleServed() {
	if m != nil {
		m.staleServed.Inc()
	}
}

func (m *Metrics) MalformedBookings(n int) {
	if m != nil && n > 0 {
		m.malformedBookings.Add(float64(n))
	}
}

func (m *Metrics) ObserveRefresh(d time.Duration) {
	if m != nil {
		m.refreshDuration.Observe(d.Seconds())
	}
}

// ObserveRecommendation records one request. outcome is one of
// "ok", "empty", "invalid" or "unavailable".
func (m *Metrics) ObserveRecommendation(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.recommendations.WithLabelValues(outcome).Inc()
	m.recommendDuration.Observe(d.Seconds())
}
