// Package middleware provides browser-facing HTTP middleware for the gateway:
// CORS for the portal front end and security response headers.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// OriginValidator decides whether a cross-origin request may read responses.
type OriginValidator interface {
	IsAllowed(origin string) bool
	GetAllowedOrigins() []string
}

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	AllowedMethods []string
	AllowedHeaders []string
	// ExposedHeaders lets the front end read request and trace IDs.
	ExposedHeaders []string
	// MaxAge is the preflight cache duration in seconds.
	MaxAge    int
	Validator OriginValidator
}

// CORS returns middleware that echoes allowed origins with credentials enabled
// and answers preflight requests with 204. Requests without an Origin header
// and requests from other origins pass through without CORS headers.
func CORS(cfg CORSConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")
			if cfg.Validator == nil || !cfg.Validator.IsAllowed(origin) {
				logger.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			// プリフライト
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				logger.Debug("CORS: preflight request",
					slog.String("origin", origin),
					slog.String("requested_method", r.Header.Get("Access-Control-Request-Method")))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if len(cfg.ExposedHeaders) > 0 {
				w.Header().Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposedHeaders, ", "))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WhitelistValidator allows origins from a fixed list. Comparison ignores
// case and a trailing slash.
type WhitelistValidator struct {
	allowed []string
}

// NewWhitelistValidator creates a validator for origins. Blank entries are
// dropped.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = normalizeOrigin(o); o != "" {
			normalized = append(normalized, o)
		}
	}
	return &WhitelistValidator{allowed: normalized}
}

func normalizeOrigin(o string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
}

// IsAllowed reports whether origin is on the list.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	for _, a := range v.allowed {
		if a == origin {
			return true
		}
	}
	return false
}

// GetAllowedOrigins returns a copy of the normalized list.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	return append([]string(nil), v.allowed...)
}
