package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"newspulse/internal/handler/http/respond"
	"newspulse/internal/resilience/circuitbreaker"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Pinger checks that a dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the portal backend is reachable and the state
// of its circuit breaker.
type HealthHandler struct {
	Portal  Pinger
	Breaker *circuitbreaker.CircuitBreaker
	Version string
	Timeout time.Duration
}

// ServeHTTP returns 200 when the backend answers, 503 otherwise. An open
// circuit alone reports "degraded" with 200 since the gateway still serves
// cached scrap lists and summary parsing.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := make(map[string]CheckStatus)
	status := "healthy"

	// ポータル API 疎通チェック
	portal := h.checkPortal(ctx)
	checks["portal_api"] = portal
	if portal.Status == "unhealthy" {
		status = "unhealthy"
	}

	if h.Breaker != nil {
		state := h.Breaker.State().String()
		cb := CheckStatus{Status: "healthy", Details: map[string]any{"name": h.Breaker.Name(), "state": state}}
		if h.Breaker.IsOpen() {
			cb.Status = "degraded"
			cb.Message = "circuit open"
			if status == "healthy" {
				status = "degraded"
			}
		}
		checks["circuit_breaker"] = cb
	}

	code := http.StatusOK
	if status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkPortal(ctx context.Context) CheckStatus {
	if h.Portal == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	start := time.Now()
	if err := h.Portal.Ping(ctx); err != nil {
		slog.Default().Warn("portal health check failed", slog.Any("error", err))
		return CheckStatus{Status: "unhealthy", Message: respond.SanitizeError(err)}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"latency_ms": time.Since(start).Milliseconds()},
	}
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

// ServeHTTP always returns 200 while the process can serve requests.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Default().Debug("alive: failed to write response", slog.Any("error", err))
	}
}
