package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts bearer token checks by result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_auth_requests_total",
			Help: "Total bearer token checks by result",
		},
		[]string{"result"}, // result: success | missing | invalid | expired | bad_subject
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gateway_auth_duration_seconds",
			Help:    "Bearer token check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)
)

// RecordAuthRequest records the result of a token check.
func RecordAuthRequest(result string) {
	authRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAuthDuration records how long a token check took.
func RecordAuthDuration(durationSeconds float64) {
	authDuration.Observe(durationSeconds)
}
