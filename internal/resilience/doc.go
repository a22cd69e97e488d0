// Package resilience holds fault tolerance helpers for calls to the portal backend.
//
// Outbound calls are never retried: a failed submission is reported to the
// member, who decides whether to try again. The circuit breaker only stops the
// gateway from hammering a backend that is already failing.
package resilience
