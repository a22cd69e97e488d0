// Package portalapi is the HTTP client for the NewsPulse portal backend.
//
// Every call passes through a token bucket limiter and a circuit breaker,
// is traced with OpenTelemetry and counted in Prometheus. Calls are never
// retried; failures are returned as *TransportError or *APIError.
package portalapi
