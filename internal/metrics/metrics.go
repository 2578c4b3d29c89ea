// Package metrics provides Prometheus metrics for the statistics API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks served requests by route pattern and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "epistats",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks request latency by route pattern
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "epistats",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// QueryDuration tracks aggregation query latency
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "epistats",
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Duration of aggregation queries in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// QueryErrorsTotal tracks failed aggregation queries
	QueryErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "epistats",
			Subsystem: "store",
			Name:      "query_errors_total",
			Help:      "Total number of failed aggregation queries",
		},
		[]string{"operation"},
	)

	// CacheLookupsTotal tracks response cache hits and misses
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "epistats",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of response cache lookups by result",
		},
		[]string{"result"},
	)

	// RateLimitedTotal tracks requests rejected by the rate limiter
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "epistats",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
	)
)
