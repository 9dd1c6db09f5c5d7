package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nmarker/unishopping/pkg/health"

	"github.com/nmarker/unishopping/internal/cart"
	"github.com/nmarker/unishopping/internal/catalog/memory"
	"github.com/nmarker/unishopping/internal/config"
	"github.com/nmarker/unishopping/internal/gateway/simulated"
	handler "github.com/nmarker/unishopping/internal/handler/http"
	notifymock "github.com/nmarker/unishopping/internal/notification/mock"
)

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Build the dependency graph. The catalog starts with the demo seed so
	// the storefront is browsable without any provisioning step.
	cat := memory.NewSeeded(logger, memory.DefaultSeed())
	store := cart.NewStore(logger)
	gw := simulated.New(cfg.GatewaySuccessRate, cfg.GatewayDelay, logger)
	notifier := notifymock.NewChannel(logger)

	logger.Info("simulated payment gateway initialized",
		slog.Float64("success_rate", cfg.GatewaySuccessRate),
		slog.Duration("delay", cfg.GatewayDelay),
	)

	// Health checks. Everything is in-process, so readiness only verifies
	// the catalog answers.
	healthHandler := health.NewHandler()
	healthHandler.Register("catalog", func(ctx context.Context) error {
		_, err := cat.List(ctx)
		return err
	})

	router := handler.NewRouter(store, cat, gw, notifier, healthHandler, cfg, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
