package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/portfolio-site/internal/bootstrap"
	"github.com/Zachkp/portfolio-site/internal/config"
	"github.com/Zachkp/portfolio-site/internal/content"
	"github.com/Zachkp/portfolio-site/internal/logging"
	"github.com/Zachkp/portfolio-site/internal/site"
	"github.com/Zachkp/portfolio-site/internal/telemetry"
	"github.com/Zachkp/portfolio-site/internal/view"
	"github.com/Zachkp/portfolio-site/internal/visitors"
)

const (
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
	purgeInterval   = 24 * time.Hour
)

func main() {
	cfg := config.Load()

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Dir = cfg.LogDir
	logger, err := logging.New(logCfg, cfg.OTELEnabled)
	if err != nil {
		logger = logging.Fallback()
		logger.Error("logger_init_failed", slog.Any("error", err))
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("config_invalid", slog.Any("error", err))
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server_exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.OTELEnabled,
		ServiceName:    cfg.OTELServiceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		OTLPInsecure:   cfg.OTLPInsecure,
		SampleRate:     cfg.OTELSampleRate,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("otel_shutdown_failed", slog.Any("error", err))
		}
	}()

	api, err := content.NewClient(content.Options{
		BaseURL:           cfg.ContentAPIURL,
		Timeout:           cfg.ContentAPITimeout,
		RequestsPerSecond: cfg.ContentAPIRPS,
		Logger:            logger,
	})
	if err != nil {
		return err
	}

	store, err := visitors.Open(ctx, cfg.VisitorDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	tracker, err := visitors.NewTracker(store, logger)
	if err != nil {
		return err
	}
	defer tracker.Flush()

	sessions := view.NewSessions(cfg.ViewSessionTTL, logger).WithLimit(cfg.ViewSessionMax)

	// /stats has no auth of its own, so it is only served when enabled.
	var stats site.StatsSource
	if cfg.StatsEnabled {
		stats = store
	}

	srv, err := site.New(site.Options{
		Content:     api,
		Sessions:    sessions,
		Facet:       view.ParseFacet(cfg.PortfolioFacet),
		Tracker:     tracker,
		Stats:       stats,
		Logger:      logger,
		Production:  cfg.Production(),
		Tracing:     provider.Enabled(),
		ServiceName: cfg.OTELServiceName,
		BaseContext: ctx,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	app := bootstrap.NewServerApp("portfolio-site", logger, httpServer, shutdownTimeout).
		WithWorker(sessions.Run).
		WithWorker(func(ctx context.Context) {
			visitors.RunRetention(ctx, store, cfg.VisitorRetention, purgeInterval, logger)
		})
	return app.Run(ctx)
}
