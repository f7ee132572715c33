// Package metrics provides Prometheus metrics for the cubestand service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by the counters below.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeNotFound = "not_found"
	OutcomeNoData   = "no_records"
	OutcomeInvalid  = "invalid"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Query metrics
	queryLatency    *prometheus.HistogramVec
	queriesInFlight prometheus.Gauge
	comparisons     prometheus.Counter
	normalizations  *prometheus.CounterVec
	unranked        *prometheus.CounterVec

	// Federation client metrics
	federationRequests *prometheus.CounterVec
	federationLatency  *prometheus.HistogramVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry served at /metrics

var globalManager = NewManager(WithPrometheusRegistry(customRegistry)) //nolint:gochecknoglobals // singleton manager

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cubestand",
		subsystem:        "standings",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		customLabels:     map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// NewMetricsManager is an alias of NewManager.
func NewMetricsManager(opts ...Option) *Manager {
	return NewManager(opts...)
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.queryLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "query_duration_milliseconds",
		Help:        "End-to-end latency of profile and comparison queries",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"mode", "outcome"})

	m.queriesInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queries_in_flight",
		Help:        "Number of queries currently being served",
		ConstLabels: labels,
	})

	m.comparisons = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "comparisons_total",
		Help:        "Total number of head-to-head comparisons computed",
		ConstLabels: labels,
	})

	m.normalizations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "normalizations_total",
		Help:        "Competitor payload normalizations by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.unranked = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "unranked_standings_total",
		Help:        "Standings degraded to the unranked placeholder, by scope and reason",
		ConstLabels: labels,
	}, []string{"scope", "reason"})

	m.federationRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "federation_requests_total",
		Help:        "Requests sent to the federation APIs by endpoint and outcome",
		ConstLabels: labels,
	}, []string{"endpoint", "outcome"})

	m.federationLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "federation_request_duration_milliseconds",
		Help:        "Latency of federation API requests in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_component_total",
		Help:        "Errors by component and type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// ObserveQuery records the latency of a finished query.
func (m *Manager) ObserveQuery(mode, outcome string, latencyMs float64) {
	if m.enabled {
		m.queryLatency.WithLabelValues(mode, outcome).Observe(latencyMs)
	}
}

// QueryStarted marks a query as in flight.
func (m *Manager) QueryStarted() {
	if m.enabled {
		m.queriesInFlight.Inc()
	}
}

// QueryFinished removes a query from the in-flight gauge.
func (m *Manager) QueryFinished() {
	if m.enabled {
		m.queriesInFlight.Dec()
	}
}

// RecordComparison increments the comparisons counter.
func (m *Manager) RecordComparison() {
	if m.enabled {
		m.comparisons.Inc()
	}
}

// RecordNormalization counts one normalization by outcome.
func (m *Manager) RecordNormalization(outcome string) {
	if m.enabled {
		m.normalizations.WithLabelValues(outcome).Inc()
	}
}

// RecordUnranked counts one standing degraded to the unranked placeholder.
func (m *Manager) RecordUnranked(scope, reason string) {
	if m.enabled {
		m.unranked.WithLabelValues(scope, reason).Inc()
	}
}

// RecordFederationRequest counts one federation request and its latency.
func (m *Manager) RecordFederationRequest(endpoint, outcome string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.federationRequests.WithLabelValues(endpoint, outcome).Inc()
	m.federationLatency.WithLabelValues(endpoint).Observe(latencyMs)
}

// RecordHTTPRequest counts one served HTTP request and its latency.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError counts an error by component and type.
func (m *Manager) RecordError(component, errorType string) {
	if m.enabled {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// UpdateSystem sets the system gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// RecordGCPause observes an average GC pause.
func (m *Manager) RecordGCPause(pauseMs float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// Package-level helpers delegate to the global manager.

// ObserveQuery records the latency of a finished query.
func ObserveQuery(mode, outcome string, latencyMs float64) {
	globalManager.ObserveQuery(mode, outcome, latencyMs)
}

// QueryStarted marks a query as in flight.
func QueryStarted() { globalManager.QueryStarted() }

// QueryFinished removes a query from the in-flight gauge.
func QueryFinished() { globalManager.QueryFinished() }

// RecordComparison increments the comparisons counter.
func RecordComparison() { globalManager.RecordComparison() }

// RecordNormalization counts one normalization by outcome.
func RecordNormalization(outcome string) { globalManager.RecordNormalization(outcome) }

// RecordUnranked counts one standing degraded to the unranked placeholder.
func RecordUnranked(scope, reason string) { globalManager.RecordUnranked(scope, reason) }

// RecordFederationRequest counts one federation request and its latency.
func RecordFederationRequest(endpoint, outcome string, latencyMs float64) {
	globalManager.RecordFederationRequest(endpoint, outcome, latencyMs)
}

// RecordHTTPRequest counts one served HTTP request and its latency.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordError counts an error by component and type.
func RecordError(component, errorType string) { globalManager.RecordError(component, errorType) }

// UpdateSystem sets the system gauges.
func UpdateSystem(memBytes uint64, goroutines int) { globalManager.UpdateSystem(memBytes, goroutines) }

// RecordGCPause observes an average GC pause.
func RecordGCPause(pauseMs float64) { globalManager.RecordGCPause(pauseMs) }

// GetRegistry returns the registry served at /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
