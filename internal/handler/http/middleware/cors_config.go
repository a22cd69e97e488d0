package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"newspulse/pkg/config"
)

var (
	defaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	defaultCORSHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	exposedCORSHeaders = []string{"X-Request-ID", "X-Trace-Id"}
)

// LoadCORSConfig reads the CORS policy from the environment.
//
//	CORS_ALLOWED_ORIGINS  comma-separated origins, e.g. https://newspulse.kr (no default)
//	CORS_ALLOWED_METHODS  default GET,POST,DELETE,OPTIONS
//	CORS_ALLOWED_HEADERS  default Content-Type,Authorization,X-Request-ID
//	CORS_MAX_AGE          seconds, default 86400
//
// With no origins configured every cross-origin request is refused.
func LoadCORSConfig() (*CORSConfig, error) {
	origins := config.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
	for _, o := range origins {
		if err := validateOrigin(o); err != nil {
			return nil, err
		}
	}

	methods := slices.Clone(config.GetEnvStringList("CORS_ALLOWED_METHODS", defaultCORSMethods))
	for i, m := range methods {
		m = strings.ToUpper(m)
		switch m {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions, http.MethodHead:
		default:
			return nil, fmt.Errorf("invalid CORS method: %s", m)
		}
		methods[i] = m
	}

	maxAge := config.GetEnvInt("CORS_MAX_AGE", 86400)
	if maxAge < 0 {
		return nil, fmt.Errorf("CORS_MAX_AGE must not be negative: %d", maxAge)
	}

	return &CORSConfig{
		AllowedMethods: methods,
		AllowedHeaders: config.GetEnvStringList("CORS_ALLOWED_HEADERS", defaultCORSHeaders),
		ExposedHeaders: exposedCORSHeaders,
		MaxAge:         maxAge,
		Validator:      NewWhitelistValidator(origins),
	}, nil
}

// validateOrigin requires a bare http(s) scheme and host.
func validateOrigin(o string) error {
	u, err := url.Parse(o)
	if err != nil {
		return fmt.Errorf("invalid origin URL '%s': %w", o, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", o)
	}
	if u.Host == "" {
		return fmt.Errorf("origin must include a host: %s", o)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin must not include path, query or fragment: %s", o)
	}
	return nil
}
