package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"newspulse/internal/config"
	"newspulse/internal/handler/http/requestid"
	"newspulse/internal/observability/metrics"
	"newspulse/internal/observability/tracing"
	"newspulse/internal/repository"
	"newspulse/internal/resilience/circuitbreaker"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client calls the portal backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *RateLimiter
	breaker    *circuitbreaker.CircuitBreaker
	location   *time.Location
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLocation sets the zone used for backend timestamps that carry no offset.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.location = loc }
}

// NewClient creates a client from the portal configuration.
func NewClient(cfg config.PortalConfig, opts ...Option) *Client {
	breakerCfg := cfg.CircuitBreaker
	if breakerCfg.Name == "" {
		breakerCfg = circuitbreaker.PortalAPIConfig()
	}
	breakerCfg.IsSuccessful = countsAsSuccess

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter:  NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
		breaker:  circuitbreaker.New(breakerCfg),
		location: time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// Ping checks that the backend answers HTTP at all. Any response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "ping", Err: err}
	}
	_ = resp.Body.Close()
	return nil
}

// request describes one backend call.
type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
}

func jsonRequest(op, method, path string, payload any) (request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("marshal %s payload: %w", op, err)
	}
	return request{op: op, method: method, path: path, body: bytes.NewReader(data), contentType: "application/json"}, nil
}

// do sends r and decodes a 2xx JSON body into out when out is non-nil.
func (c *Client) do(ctx context.Context, r request, out any) (err error) {
	ctx, span := tracing.GetTracer().Start(ctx, "portalapi."+r.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("portal.operation", r.op),
			attribute.String("http.method", r.method),
		),
	)
	start := time.Now()
	defer func() {
		metrics.RecordPortalCall(r.op, outcome(err), time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome(err))
		}
		span.End()
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Op: r.op, Err: err}
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.send(ctx, r, out)
	})
	if circuitbreaker.IsRejection(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func (c *Client) send(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", r.op, err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")

	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
	}
	req.Header.Set(requestid.RequestIDHeader, reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: r.op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Op: r.op, Err: fmt.Errorf("read response: %w", err)}
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(r.op, resp.StatusCode, body)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.op, err)
	}
	return nil
}

var (
	_ repository.ScrapRepository    = (*Client)(nil)
	_ repository.BriefingRepository = (*Client)(nil)
)
