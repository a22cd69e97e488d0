// Package config assembles the gateway configuration from environment
// variables and the category catalog from YAML.
package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"newspulse/internal/domain/entity"
	"newspulse/internal/resilience/circuitbreaker"
	envcfg "newspulse/pkg/config"
)

// GatewayConfig holds every setting of the portal gateway.
type GatewayConfig struct {
	// Addr is the listen address. Default: ":8080"
	Addr string

	// Version is reported by the health endpoint. Default: "dev"
	Version string

	Portal   PortalConfig
	Scrap    ScrapConfig
	Briefing BriefingConfig
	Tracing  TracingConfig
}

// PortalConfig configures the client for the portal backend.
type PortalConfig struct {
	// BaseURL of the portal backend. Default: "http://localhost:8080"
	BaseURL string

	// Timeout per outbound request. Default: 15s
	Timeout time.Duration

	// RequestsPerSecond and Burst shape the outbound token bucket.
	RequestsPerSecond float64
	Burst             int

	CircuitBreaker circuitbreaker.Config
}

// ScrapConfig configures scrap list handling.
type ScrapConfig struct {
	// CacheTTL bounds how long a member's scrap list is served from memory. Default: 30s
	CacheTTL time.Duration

	// SearchDebounce is the idle window before a search query takes effect. Default: 350ms
	SearchDebounce time.Duration

	// CategoriesFile overrides the embedded category catalog.
	CategoriesFile string
}

// BriefingConfig configures briefing outcome formatting.
type BriefingConfig struct {
	// Locale for scheduled time formatting. Default: "ko-KR"
	Locale string

	// TimeZone in which scheduled times are shown. Default: "Asia/Seoul"
	TimeZone string
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	SampleRatio float64
}

// LoadGatewayConfig loads the gateway configuration from environment variables.
func LoadGatewayConfig() (*GatewayConfig, error) {
	breaker := circuitbreaker.PortalAPIConfig()
	breaker.Timeout = envcfg.GetEnvDuration("PORTAL_CB_TIMEOUT", breaker.Timeout)
	breaker.FailureThreshold = envcfg.GetEnvFloat("PORTAL_CB_FAILURE_THRESHOLD", breaker.FailureThreshold)

	cfg := &GatewayConfig{
		Addr:    envcfg.GetEnvString("GATEWAY_ADDR", ":8080"),
		Version: envcfg.GetEnvString("VERSION", "dev"),
		Portal: PortalConfig{
			BaseURL:           envcfg.GetEnvString("PORTAL_API_BASE_URL", "http://localhost:8080"),
			Timeout:           envcfg.GetEnvDuration("PORTAL_API_TIMEOUT", 15*time.Second),
			RequestsPerSecond: envcfg.GetEnvFloat("PORTAL_API_RPS", 20),
			Burst:             envcfg.GetEnvInt("PORTAL_API_BURST", 10),
			CircuitBreaker:    breaker,
		},
		Scrap: ScrapConfig{
			CacheTTL:       envcfg.GetEnvDuration("SCRAP_CACHE_TTL", 30*time.Second),
			SearchDebounce: envcfg.GetEnvDuration("SCRAP_SEARCH_DEBOUNCE", 350*time.Millisecond),
			CategoriesFile: envcfg.GetEnvString("SCRAP_CATEGORIES_FILE", ""),
		},
		Briefing: BriefingConfig{
			Locale:   envcfg.GetEnvString("BRIEFING_LOCALE", "ko-KR"),
			TimeZone: envcfg.GetEnvString("BRIEFING_TIMEZONE", "Asia/Seoul"),
		},
		Tracing: TracingConfig{
			Enabled:     envcfg.GetEnvBool("TRACING_ENABLED", false),
			ServiceName: envcfg.GetEnvString("TRACING_SERVICE_NAME", "newspulse-gateway"),
			SampleRatio: envcfg.GetEnvFloat("TRACING_SAMPLE_RATIO", 1.0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *GatewayConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("GATEWAY_ADDR cannot be empty")
	}
	if err := entity.ValidateBaseURL(c.Portal.BaseURL); err != nil {
		return fmt.Errorf("PORTAL_API_BASE_URL: %w", err)
	}
	if err := envcfg.ValidatePositiveDuration(c.Portal.Timeout); err != nil {
		return fmt.Errorf("PORTAL_API_TIMEOUT: %w", err)
	}
	if c.Portal.RequestsPerSecond <= 0 {
		return fmt.Errorf("PORTAL_API_RPS must be positive")
	}
	if c.Portal.Burst <= 0 {
		return fmt.Errorf("PORTAL_API_BURST must be positive")
	}
	if c.Portal.CircuitBreaker.FailureThreshold <= 0 || c.Portal.CircuitBreaker.FailureThreshold > 1 {
		return fmt.Errorf("PORTAL_CB_FAILURE_THRESHOLD must be between 0.0 and 1.0")
	}
	if err := envcfg.ValidatePositiveDuration(c.Portal.CircuitBreaker.Timeout); err != nil {
		return fmt.Errorf("PORTAL_CB_TIMEOUT: %w", err)
	}
	if err := envcfg.ValidatePositiveDuration(c.Scrap.CacheTTL); err != nil {
		return fmt.Errorf("SCRAP_CACHE_TTL: %w", err)
	}
	if err := envcfg.ValidateDurationRange(c.Scrap.SearchDebounce, 10*time.Millisecond, 5*time.Second); err != nil {
		return fmt.Errorf("SCRAP_SEARCH_DEBOUNCE: %w", err)
	}
	if _, err := time.LoadLocation(c.Briefing.TimeZone); err != nil {
		return fmt.Errorf("BRIEFING_TIMEZONE: %w", err)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATIO must be between 0.0 and 1.0")
	}
	return nil
}
