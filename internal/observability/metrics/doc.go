// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all gateway metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Portal backend call metrics (outcome, latency)
//   - Scrap cache and briefing submission counters
//
// All metrics are registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	err := client.ToggleScrap(ctx, memberID, newsID)
//	metrics.RecordPortalCall("toggle_scrap", outcomeOf(err), time.Since(start))
package metrics
