// Package observability groups the gateway's logging, metrics and tracing support.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
package observability
