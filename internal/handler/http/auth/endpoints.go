package auth

import "strings"

// PublicEndpoints are served without a bearer token.
// /health and /live are probed by the orchestrator, /metrics by Prometheus.
var PublicEndpoints = []string{
	"/health",
	"/live",
	"/metrics",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Entries ending with '/' match by prefix. Other entries match exactly, with a
// trailing slash, or followed by a query string.
//
//	IsPublicEndpoint("/health")        // true
//	IsPublicEndpoint("/health?x=1")    // true
//	IsPublicEndpoint("/health/detail") // false
//	IsPublicEndpoint("/scraps")        // false
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		if path == endpoint || path == endpoint+"/" || strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
