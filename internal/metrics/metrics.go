package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Resolution metrics
	ResolveRequestsTotal   *prometheus.CounterVec
	ResolveDurationSeconds *prometheus.HistogramVec

	// Intent oracle metrics
	OracleRequestsTotal   *prometheus.CounterVec
	OracleDurationSeconds prometheus.Histogram

	// Intent cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Confirmation metrics
	ConfirmationsTotal *prometheus.CounterVec

	// Session metrics
	SessionsActive  prometheus.Gauge
	SessionsExpired prometheus.Counter

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Singleflight metrics
	SingleflightDedupTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimitDropsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Resolution metrics
		ResolveRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapbot_resolve_requests_total",
				Help: "Total number of resolution requests by stage and status",
			},
			[]string{"stage", "status"}, // stage: exact, fuzzy, intent, similarity; status: resolved, ambiguous, unresolved
		),

		ResolveDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mapbot_resolve_duration_seconds",
				Help:    "Resolution duration in seconds by stage",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"stage"},
		),

		// Intent oracle metrics
		OracleRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapbot_oracle_requests_total",
				Help: "Total number of oracle requests by status",
			},
			[]string{"status"}, // status: success, error, timeout, invalid_response
		),

		OracleDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mapbot_oracle_duration_seconds",
				Help:    "Oracle round trip duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
			},
		),

		// Intent cache metrics
		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapbot_cache_hits_total",
				Help: "Total number of intent cache hits by source",
			},
			[]string{"source"}, // source: memory, sqlite
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapbot_cache_misses_total",
				Help: "Total number of intent cache misses by source",
			},
			[]string{"source"},
		),

		// Confirmation metrics
		ConfirmationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapbot_confirmations_total",
				Help: "Total number of confirmation replies by outcome",
			},
			[]string{"outcome"}, // outcome: accepted, selected, rejected, restarted
		),

		// Session metrics
		SessionsActive: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "mapbot_sessions_active",
				Help: "Number of sessions currently held in the store",
			},
		),

		SessionsExpired: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "mapbot_sessions_expired_total",
				Help: "Total number of sessions evicted after idle TTL",
			},
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapbot_http_errors_total",
				Help: "Total HTTP errors by type and route",
			},
			[]string{"error_type", "route"}, // error_type: bad_request, timeout, internal, etc.
		),

		// Singleflight metrics
		SingleflightDedupTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapbot_singleflight_dedup_total",
				Help: "Total number of deduplicated oracle calls (calls that waited instead of executing)",
			},
			[]string{"kind"},
		),

		// Rate limiter metrics
		RateLimitDropsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mapbot_rate_limit_drops_total",
				Help: "Total number of requests dropped by rate limiting",
			},
			[]string{"scope"},
		),
	}

	return m
}

// RecordResolve records a resolution request with its final stage and status
func (m *Metrics) RecordResolve(stage, status string, duration float64) {
	m.ResolveRequestsTotal.WithLabelValues(stage, status).Inc()
	m.ResolveDurationSeconds.WithLabelValues(stage).Observe(duration)
}

// RecordOracleRequest records an oracle round trip
func (m *Metrics) RecordOracleRequest(status string, duration float64) {
	m.OracleRequestsTotal.WithLabelValues(status).Inc()
	m.OracleDurationSeconds.Observe(duration)
}

// RecordCacheHit records an intent cache hit
func (m *Metrics) RecordCacheHit(source string) {
	m.CacheHitsTotal.WithLabelValues(source).Inc()
}

// RecordCacheMiss records an intent cache miss
func (m *Metrics) RecordCacheMiss(source string) {
	m.CacheMissesTotal.WithLabelValues(source).Inc()
}

// RecordConfirmation records a confirmation reply outcome
func (m *Metrics) RecordConfirmation(outcome string) {
	m.ConfirmationsTotal.WithLabelValues(outcome).Inc()
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, route string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, route).Inc()
}

// RecordSingleflightDedup records a deduplicated request
func (m *Metrics) RecordSingleflightDedup(kind string) {
	m.SingleflightDedupTotal.WithLabelValues(kind).Inc()
}

// RecordRateLimitDrop records a rate limited request
func (m *Metrics) RecordRateLimitDrop(scope string) {
	m.RateLimitDropsTotal.WithLabelValues(scope).Inc()
}

// RecordSessionExpired records an idle session eviction
func (m *Metrics) RecordSessionExpired(count int) {
	m.SessionsExpired.Add(float64(count))
}
