// Package bootstrap runs the HTTP server and its background workers until
// the process is told to stop.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// Worker is a background loop that runs until ctx is done.
type Worker func(ctx context.Context)

// ServerApp is an HTTP server plus the workers that live alongside it.
type ServerApp struct {
	Name            string
	Logger          *slog.Logger
	Server          *http.Server
	ShutdownTimeout time.Duration
	workers         []Worker
}

func NewServerApp(name string, logger *slog.Logger, server *http.Server, shutdownTimeout time.Duration) *ServerApp {
	return &ServerApp{
		Name:            name,
		Logger:          logger,
		Server:          server,
		ShutdownTimeout: shutdownTimeout,
	}
}

// WithWorker adds a background worker stopped on shutdown.
func (a *ServerApp) WithWorker(w Worker) *ServerApp {
	a.workers = append(a.workers, w)
	return a
}

// Run serves until SIGINT/SIGTERM or ctx ends, then shuts down gracefully.
func (a *ServerApp) Run(ctx context.Context) error {
	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(signalCtx)

	a.Logger.Info("server_start", slog.String("name", a.Name), slog.String("addr", a.Server.Addr))

	g.Go(func() error {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	for _, w := range a.workers {
		w := w
		g.Go(func() error {
			w(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutdown_signal_received", slog.String("name", a.Name))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		a.Logger.Info("server_stopped", slog.String("name", a.Name))
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("wait for goroutines: %w", err)
	}
	return nil
}
