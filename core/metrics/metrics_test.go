package metrics_test

import (
	"testing"
	"time"

	"room-booking-api/core/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.MustNewMetrics(reg)

	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.MalformedBookings(3)
	m.MalformedBookings(0)
	m.ObserveRecommendation("ok", 10*time.Millisecond)
	m.ObserveRecommendation("unavailable", time.Millisecond)

	count, err := testutil.GatherAndCount(reg,
		"room_booking_directory_cache_hits_total",
		"room_booking_recommendation_requests_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				values[mf.GetName()] += c.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["room_booking_directory_cache_hits_total"])
	assert.Equal(t, 1.0, values["room_booking_directory_cache_misses_total"])
	assert.Equal(t, 3.0, values["room_booking_directory_malformed_bookings_total"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.CacheHit()
		m.CacheMiss()
		m.RefreshFailed()
		m.StaleServed()
		m.MalformedBookings(2)
		m.ObserveRefresh(time.Second)
		m.ObserveRecommendation("ok", time.Second)
	})
}
