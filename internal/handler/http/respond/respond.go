// Package respond writes JSON responses for the gateway and keeps internal
// error details out of them.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダー送信済みのためログのみ
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// NoContent writes a 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// safeMarkers mark error texts that may be shown to callers as they are.
var safeMarkers = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"cannot be",
	"too long",
	"empty",
}

// SafeError returns validation-style messages as they are and replaces
// anything else, and every 5xx, with a generic text. Masked errors are logged
// after SanitizeError.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	if code < 500 {
		lower := strings.ToLower(msg)
		for _, marker := range safeMarkers {
			if strings.Contains(lower, marker) {
				isSafe = true
				break
			}
		}
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("request failed",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": genericMessage(code)})
}

func genericMessage(code int) string {
	if code >= 500 {
		return "internal server error"
	}
	return strings.ToLower(http.StatusText(code))
}

// AppError carries a message that is safe to show next to the internal cause.
type AppError struct {
	UserMsg string // shown to the caller
	Err     error  // logged only
	Code    int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// AppErrorResponse is the body written for an AppError.
type AppErrorResponse struct {
	Error string `json:"error"`
}
