package http

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds the request context to d. Paths with one of the exempt
// prefixes keep the server-wide limits only; voice uploads take longer than
// other calls.
//
// The handler itself writes the response: when the deadline passes, the portal
// client returns a context error that the handler maps to 504.
func Timeout(d time.Duration, exempt ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasPrefix(r.URL.Path, exempt) {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
