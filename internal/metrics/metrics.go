// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package metrics defines the Prometheus collectors exposed at /metrics.
// All collectors are registered with the default registry via promauto, so
// importing this package is enough to wire them up.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP server metrics, recorded by the Prometheus middleware.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "atelier_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "atelier_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Museum source metrics, recorded by the outbound clients.
var (
	SourceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_source_requests_total",
			Help: "Outbound museum API requests by source, operation and outcome",
		},
		[]string{"source", "operation", "outcome"},
	)

	SourceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "atelier_source_request_duration_seconds",
			Help:    "Outbound museum API request latency by source and operation",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source", "operation"},
	)

	SourceRateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_source_rate_limited_total",
			Help: "Times a museum source returned HTTP 429 and was benched for the request",
		},
		[]string{"source"},
	)
)

// Circuit breaker metrics. State values: 0 = closed, 1 = half-open, 2 = open.
var (
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "atelier_circuit_breaker_state",
			Help: "Circuit breaker state per source (0=closed, 1=half-open, 2=open)",
		},
		[]string{"source"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions per source",
		},
		[]string{"source", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by source and outcome",
		},
		[]string{"source", "outcome"},
	)
)

// Search pipeline metrics.
var (
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_searches_total",
			Help: "Completed theme searches by outcome",
		},
		[]string{"outcome"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "atelier_search_duration_seconds",
			Help:    "End-to-end search pipeline latency",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30},
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "atelier_search_results",
			Help:    "Number of results returned per search",
			Buckets: []float64{0, 1, 5, 10, 15, 20},
		},
	)

	BalancerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_balancer_rejections_total",
			Help: "Candidates rejected during balancing by quota type",
		},
		[]string{"quota"},
	)

	NoveltyCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelier_novelty_cache_events_total",
			Help: "Novelty cache lookups by result (hit means recently served)",
		},
		[]string{"result"},
	)
)
