package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"newspulse/internal/config"
	"newspulse/internal/domain/entity"
	"newspulse/internal/infra/portalapi"
	"newspulse/internal/observability/logging"
	"newspulse/internal/resilience/circuitbreaker"
	briefUC "newspulse/internal/usecase/briefing"
	scrapUC "newspulse/internal/usecase/scrap"
)

type globalOptions struct {
	PortalURL string        `long:"portal-url" env:"PORTAL_API_BASE_URL" default:"http://localhost:8080" description:"Portal backend base URL"`
	Member    int64         `short:"m" long:"member" env:"PORTAL_MEMBER_ID" description:"Member ID to act for"`
	Timeout   time.Duration `long:"timeout" env:"PORTAL_API_TIMEOUT" default:"15s" description:"Timeout per backend request"`
	Locale    string        `long:"locale" env:"BRIEFING_LOCALE" default:"ko-KR" description:"Locale for scheduled times"`
	TimeZone  string        `long:"tz" env:"BRIEFING_TIMEZONE" default:"Asia/Seoul" description:"Time zone for scheduled times"`
	Verbose   bool          `short:"v" long:"verbose" description:"Log backend calls to stderr"`
}

// app carries the parsed global options and the services built from them.
type app struct {
	opts   globalOptions
	ctx    context.Context
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	location *time.Location
	portal   *portalapi.Client
	scraps   *scrapUC.Service
	brief    *briefUC.Service
}

// setup builds the logger, portal client and services once.
func (a *app) setup() error {
	if a.portal != nil {
		return nil
	}

	level := slog.LevelWarn
	if a.opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(logging.NewTextLogger(a.errOut, level))

	if err := entity.ValidateBaseURL(a.opts.PortalURL); err != nil {
		return fmt.Errorf("--portal-url: %w", err)
	}
	loc, err := time.LoadLocation(a.opts.TimeZone)
	if err != nil {
		return fmt.Errorf("--tz: %w", err)
	}
	a.location = loc

	a.portal = portalapi.NewClient(config.PortalConfig{
		BaseURL:           a.opts.PortalURL,
		Timeout:           a.opts.Timeout,
		RequestsPerSecond: 5,
		Burst:             5,
		CircuitBreaker:    circuitbreaker.PortalAPIConfig(),
	}, portalapi.WithLocation(loc))
	a.scraps = scrapUC.NewService(a.portal, scrapUC.DefaultCacheTTL)
	a.brief = briefUC.NewService(a.portal, loc, briefUC.ParseLocale(a.opts.Locale))
	return nil
}

// viewer returns the member given by --member.
func (a *app) viewer() (entity.Viewer, error) {
	if a.opts.Member == 0 {
		return entity.Viewer{}, fmt.Errorf("--member is required: %w", entity.ErrUnauthenticated)
	}
	return entity.NewViewer(strconv.FormatInt(a.opts.Member, 10))
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
