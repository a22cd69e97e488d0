package http

import (
	"net/http"
	"strings"

	"newspulse/internal/handler/http/respond"
)

const (
	maxAuthorizationHeader = 8 << 10
	maxPathLength          = 2 << 10
)

// InputValidation rejects oversized Authorization headers and paths, and caps
// request bodies at maxBody bytes. Paths under an exempt prefix apply their own
// body limit.
func InputValidation(maxBody int64, exempt ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthorizationHeader {
				respond.JSON(w, http.StatusRequestHeaderFieldsTooLarge, map[string]string{"error": "authorization header too large"})
				return
			}
			if len(r.URL.Path) > maxPathLength {
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "URI too long"})
				return
			}
			if r.Body != nil && !hasPrefix(r.URL.Path, exempt) {
				r.Body = http.MaxBytesReader(w, r.Body, maxBody)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
