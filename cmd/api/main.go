package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newspulse/internal/config"
	"newspulse/internal/infra/portalapi"
	"newspulse/internal/observability/logging"
	"newspulse/internal/observability/tracing"
	briefUC "newspulse/internal/usecase/briefing"
	scrapUC "newspulse/internal/usecase/scrap"

	hhttp "newspulse/internal/handler/http"
	hauth "newspulse/internal/handler/http/auth"
	hbriefing "newspulse/internal/handler/http/briefing"
	"newspulse/internal/handler/http/middleware"
	hmypage "newspulse/internal/handler/http/mypage"
	"newspulse/internal/handler/http/requestid"
	hscrap "newspulse/internal/handler/http/scrap"
	hsummary "newspulse/internal/handler/http/summary"
)

const (
	// maxRequestBody caps JSON bodies; voice uploads have their own limit.
	maxRequestBody = 1 << 20
	requestTimeout = 30 * time.Second
	voicePath      = "/briefings/voice"
)

func main() {
	logger := initLogger()

	cfg, err := config.LoadGatewayConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	secret, err := hauth.LoadSecret()
	if err != nil {
		logger.Error("JWT secret validation failed", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := initTracing(logger, cfg.Tracing)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	handler := setupServer(logger, cfg, secret)
	runServer(logger, cfg, handler)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

func initTracing(logger *slog.Logger, cfg config.TracingConfig) func(context.Context) error {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }
	}
	logger.Info("tracing enabled",
		slog.String("service_name", cfg.ServiceName),
		slog.Float64("sample_ratio", cfg.SampleRatio))
	return tracing.Setup(cfg.ServiceName, cfg.SampleRatio)
}

func loadCatalog(logger *slog.Logger, path string) *config.CategoryCatalog {
	if path == "" {
		return config.DefaultCategoryCatalog()
	}
	catalog, err := config.LoadCategoryCatalog(path)
	if err != nil {
		logger.Error("failed to load category catalog", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("category catalog loaded", slog.String("path", path), slog.Int("categories", len(catalog.Categories)))
	return catalog
}

// setupServer wires services, routes and the middleware chain.
func setupServer(logger *slog.Logger, cfg *config.GatewayConfig, secret []byte) http.Handler {
	loc, err := time.LoadLocation(cfg.Briefing.TimeZone)
	if err != nil {
		logger.Error("invalid time zone", slog.String("time_zone", cfg.Briefing.TimeZone), slog.Any("error", err))
		os.Exit(1)
	}
	catalog := loadCatalog(logger, cfg.Scrap.CategoriesFile)

	portal := portalapi.NewClient(cfg.Portal, portalapi.WithLocation(loc))
	scrapSvc := scrapUC.NewService(portal, cfg.Scrap.CacheTTL)
	briefSvc := briefUC.NewService(portal, loc, briefUC.ParseLocale(cfg.Briefing.Locale))

	mux := http.NewServeMux()

	// ヘルスチェック・メトリクス（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{Portal: portal, Breaker: portal.Breaker(), Version: cfg.Version})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hscrap.Register(mux, scrapSvc, catalog)
	hsummary.Register(mux)
	hbriefing.Register(mux, briefSvc)
	hmypage.Register(mux, hmypage.Handler{Scraps: scrapSvc, Briefings: briefSvc, Catalog: catalog})

	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("CORS configured", slog.Any("allowed_origins", corsConfig.Validator.GetAllowedOrigins()))

	logger.Info("gateway configured",
		slog.String("portal_base_url", cfg.Portal.BaseURL),
		slog.Duration("portal_timeout", cfg.Portal.Timeout),
		slog.Float64("portal_rps", cfg.Portal.RequestsPerSecond),
		slog.Duration("scrap_cache_ttl", cfg.Scrap.CacheTTL),
		slog.String("briefing_locale", cfg.Briefing.Locale),
		slog.String("briefing_time_zone", cfg.Briefing.TimeZone))

	// 外側から順に適用
	return hhttp.Chain(mux,
		middleware.CORS(*corsConfig, logger),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.RequestLogger(logger),
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		middleware.SecurityHeaders,
		hhttp.MetricsMiddleware,
		hhttp.InputValidation(maxRequestBody, voicePath),
		hhttp.Timeout(requestTimeout, voicePath),
		hauth.Authz(secret),
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.GatewayConfig, handler http.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
