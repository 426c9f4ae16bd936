package services

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	searchRequests      *prometheus.CounterVec
	searchDuration      prometheus.Histogram
	validationFailures  *prometheus.CounterVec
	proxyForwards       *prometheus.CounterVec
	proxyDuration       prometheus.Histogram
	searchTotalHits     prometheus.Histogram
	circuitBreakerState *prometheus.GaugeVec
}

var (
	defaultMetrics     *PrometheusMetrics
	defaultMetricsOnce sync.Once
)

// NewPrometheusMetrics returns the process-wide recorder; collectors register once
func NewPrometheusMetrics() MetricsRecorderInterface {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = newPrometheusMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

func newPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		searchRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_search_requests_total",
				Help: "Total number of structured transaction searches by outcome",
			},
			[]string{"status"},
		),
		searchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transaction_search_duration_seconds",
				Help:    "Structured transaction search duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		validationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_search_validation_failures_total",
				Help: "Total number of searches rejected by filter validation",
			},
			[]string{"reason"},
		),
		proxyForwards: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_proxy_forwards_total",
				Help: "Total number of search bodies forwarded verbatim by outcome",
			},
			[]string{"status"},
		),
		proxyDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_proxy_duration_seconds",
				Help:    "Search proxy forward duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		searchTotalHits: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transaction_search_total_hits",
				Help:    "Total hits reported per structured search",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case "search_request":
		if status != "" {
			m.searchRequests.WithLabelValues(status).Inc()
		}
	case "search_validation_failed":
		if reason := tags["reason"]; reason != "" {
			m.validationFailures.WithLabelValues(reason).Inc()
		}
	case "proxy_forward":
		if status != "" {
			m.proxyForwards.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "search":
		m.searchDuration.Observe(duration.Seconds())
	case "proxy_forward":
		m.proxyDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "search_total_hits":
		m.searchTotalHits.Observe(value)
	case "circuit_breaker_state":
		if service := tags["service"]; service != "" {
			m.circuitBreakerState.WithLabelValues(service).Set(value)
		}
	}
}

// NoopMetrics discards every measurement
type NoopMetrics struct{}

func (NoopMetrics) IncrementCounter(string, map[string]string)     {}
func (NoopMetrics) RecordProcessingTime(string, time.Duration)     {}
func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}
