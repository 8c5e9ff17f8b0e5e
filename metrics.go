package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wbstat_client",
			Name:      "requests_total",
			Help:      "Calls completed, by endpoint and outcome (ok, remote, transport, validation).",
		},
		[]string{"endpoint", "outcome"},
	)

	exchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wbstat_client",
			Name:      "exchanges_total",
			Help:      "HTTP exchanges sent, including 429 retries, by endpoint and class (ok, recoverable, irrecoverable).",
		},
		[]string{"endpoint", "class"},
	)

	rateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wbstat_client",
			Name:      "rate_limited_total",
			Help:      "429 responses that were retried.",
		},
		[]string{"endpoint"},
	)

	throttleWaitSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wbstat_client",
			Name:      "throttle_wait_seconds",
			Help:      "Time spent waiting for the request throttle.",
			Buckets:   []float64{0, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	exchangeDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wbstat_client",
			Name:      "exchange_duration_seconds",
			Help:      "Duration of the final HTTP exchange of each call.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	circuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "wbstat_client",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
		},
		[]string{"name"},
	)
)
