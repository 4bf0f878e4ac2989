package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// External dependency calls (taste graph, generative models, search).
	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adalchemy_external_request_duration_seconds",
			Help:    "Duration of calls to external services in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	ExternalRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adalchemy_external_request_errors_total",
			Help: "Total number of failed calls to external services",
		},
		[]string{"service", "operation"},
	)

	// Pipeline outcomes
	DegradedOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adalchemy_degraded_outcomes_total",
			Help: "Total number of results served from a fallback tier",
		},
		[]string{"component"},
	)

	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adalchemy_generations_total",
			Help: "Total number of generation workflows by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// Circuit breakers around media generation
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "adalchemy_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adalchemy_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	// HTTP API
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adalchemy_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adalchemy_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveExternal records the latency of an external call and counts it as
// an error when err is non-nil.
func ObserveExternal(service, operation string, start time.Time, err error) {
	ExternalRequestDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		ExternalRequestErrors.WithLabelValues(service, operation).Inc()
	}
}
