package middleware

import "net/http"

// apiPolicy is the Content-Security-Policy for JSON responses: nothing may be
// loaded or framed.
const apiPolicy = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeaders sets response headers that stop browsers from sniffing,
// framing or rendering gateway responses as documents.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", apiPolicy)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
