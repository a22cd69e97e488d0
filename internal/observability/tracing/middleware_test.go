package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"newspulse/internal/handler/http/requestid"
)

// installExporter sets an in-memory tracer provider for the duration of the test.
func installExporter(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})
	return exporter, tp
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter, tp := installExporter(t)

	handler := requestid.Middleware(Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest("GET", "/scraps", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != "GET /scraps" {
		t.Errorf("expected span name 'GET /scraps', got '%s'", span.Name)
	}

	found := map[string]bool{}
	for _, attr := range span.Attributes {
		switch attr.Key {
		case "http.method":
			found["method"] = attr.Value.AsString() == "GET"
		case "http.path":
			found["path"] = attr.Value.AsString() == "/scraps"
		case "http.status_code":
			found["status"] = attr.Value.AsInt64() == 200
		case "request.id":
			found["request_id"] = attr.Value.AsString() == "req-1"
		}
	}
	for _, key := range []string{"method", "path", "status", "request_id"} {
		if !found[key] {
			t.Errorf("expected %s attribute on span", key)
		}
	}

	if got := rr.Header().Get("X-Trace-Id"); len(got) != 32 {
		t.Errorf("expected 32 hex trace ID header, got %q", got)
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := installExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/mypage", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("expected propagated trace ID, got %s", got)
	}
}

func TestMiddleware_MarksErrorSpansFor5xx(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantError bool
	}{
		{"server error", http.StatusBadGateway, true},
		{"client error", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, tp := installExporter(t)

			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/briefings/text", nil))
			_ = tp.ForceFlush(context.Background())

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			isError := spans[0].Status.Code == codes.Error
			if isError != tt.wantError {
				t.Errorf("status %d: expected error=%v, got %v", tt.status, tt.wantError, isError)
			}
		})
	}
}

func TestSetup_InstallsProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown := Setup("newspulse-test", 1.0, sdktrace.WithSyncer(exporter))
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})

	_, span := GetTracer().Start(context.Background(), "probe")
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 || spans[0].Name != "probe" {
		t.Fatalf("expected the probe span to be exported, got %v", spans)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}
