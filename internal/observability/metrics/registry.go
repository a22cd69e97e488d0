// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track gateway request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks requests currently being served
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Portal backend metrics track outbound calls
var (
	// PortalAPIRequestsTotal counts backend calls by operation and outcome
	PortalAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_api_requests_total",
			Help: "Total number of portal backend API calls",
		},
		[]string{"operation", "outcome"}, // outcome: success, api_error, transport_error, circuit_open
	)

	// PortalAPIRequestDuration measures backend call latency
	PortalAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_api_request_duration_seconds",
			Help:    "Portal backend API call duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)
)

// Domain metrics track scrap and briefing activity
var (
	// ScrapCacheLookupsTotal counts scrap list lookups by result
	ScrapCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrap_cache_lookups_total",
			Help: "Total number of scrap list cache lookups",
		},
		[]string{"result"}, // result: hit, miss, refresh, discarded
	)

	// UnscrapTotal counts unscrap requests by result
	UnscrapTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrap_unscrap_total",
			Help: "Total number of unscrap requests",
		},
		[]string{"result"}, // result: removed, absent, failed
	)

	// BriefingSubmissionsTotal counts briefing submissions by channel and outcome
	BriefingSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefing_submissions_total",
			Help: "Total number of briefing delivery submissions",
		},
		[]string{"channel", "outcome"},
	)

	// SummariesParsedTotal counts parsed summaries by section coverage
	SummariesParsedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summaries_parsed_total",
			Help: "Total number of parsed summaries",
		},
		[]string{"sections"}, // sections: none, partial, full
	)
)
