package portalapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnavailable is returned when the circuit breaker refuses a call.
var ErrUnavailable = errors.New("portal backend unavailable")

// TransportError means no HTTP response was received from the backend.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("portal %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the backend.
// Message is already resolved to the text shown to the member.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsClientError reports whether the backend rejected the request itself.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// newAPIError resolves the message: the JSON "message" field, else the raw
// body text, else "HTTP <status>".
func newAPIError(op string, status int, body []byte) *APIError {
	return &APIError{Op: op, StatusCode: status, Message: extractMessage(status, body)}
}

func extractMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
		return payload.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

// countsAsSuccess tells the circuit breaker which errors are not backend failures.
// 4xx responses and caller cancellation leave the breaker alone.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsClientError()
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return errors.Is(err, context.Canceled)
	}
	return false
}

// outcome labels a call result for metrics.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if errors.Is(err, ErrUnavailable) {
		return "rejected"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= http.StatusInternalServerError {
			return "server_error"
		}
		return "client_error"
	}
	return "transport_error"
}
