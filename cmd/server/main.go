// Command server runs the transaction search API: the /search proxy, the
// structured /api/v1/transactions/search endpoint, /health and /metrics.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"txn-search/internal/config"
	"txn-search/internal/searchengine"
	"txn-search/internal/server"
	"txn-search/internal/services"
	"txn-search/internal/validation"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := server.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	client, err := searchengine.NewClient(cfg.Search.EngineConfig(), logger)
	if err != nil {
		logger.Error("invalid search engine configuration", "error", err)
		os.Exit(1)
	}
	service := services.NewSearchService(
		client,
		validation.NewSearchValidator(),
		services.NewPrometheusMetrics(),
		logger,
	)
	srv := server.New(cfg, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
