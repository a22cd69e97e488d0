// Package tracing provides OpenTelemetry tracing integration.
//
// Setup installs the SDK tracer provider at startup, Middleware opens a server
// span per gateway request, and GetTracer is used for spans around portal
// backend calls. Outbound requests carry the trace context through the
// otelhttp transport of the portal API client.
package tracing
