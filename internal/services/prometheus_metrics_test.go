package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newPrometheusMetrics(reg)

	m.IncrementCounter("search_request", map[string]string{"status": "success"})
	m.IncrementCounter("search_request", map[string]string{"status": "success"})
	m.IncrementCounter("search_request", map[string]string{"status": "rejected"})
	m.IncrementCounter("search_validation_failed", map[string]string{"reason": "range_too_wide"})
	m.IncrementCounter("proxy_forward", map[string]string{"status": "failed"})
	m.IncrementCounter("unknown", map[string]string{"status": "success"})
	m.IncrementCounter("search_request", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.searchRequests.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searchRequests.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validationFailures.WithLabelValues("range_too_wide")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.proxyForwards.WithLabelValues("failed")))
}

func TestPrometheusMetrics_TimingsAndGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newPrometheusMetrics(reg)

	m.RecordProcessingTime("search", 120*time.Millisecond)
	m.RecordProcessingTime("proxy_forward", 30*time.Millisecond)
	m.RecordGauge("search_total_hits", 57, nil)
	m.RecordGauge("circuit_breaker_state", 1, map[string]string{"service": "search_engine"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.circuitBreakerState.WithLabelValues("search_engine")))

	families, err := reg.Gather()
	require.NoError(t, err)
	counts := map[string]uint64{}
	for _, mf := range families {
		if h := mf.GetMetric()[0].GetHistogram(); h != nil {
			counts[mf.GetName()] = h.GetSampleCount()
		}
	}
	assert.Equal(t, uint64(1), counts["transaction_search_duration_seconds"])
	assert.Equal(t, uint64(1), counts["search_proxy_duration_seconds"])
	assert.Equal(t, uint64(1), counts["transaction_search_total_hits"])
}

func TestNewPrometheusMetrics_Singleton(t *testing.T) {
	assert.Same(t, NewPrometheusMetrics(), NewPrometheusMetrics())
}
