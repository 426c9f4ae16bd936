// Package server assembles the HTTP API: routes, middleware and lifecycle.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"txn-search/internal/config"
	"txn-search/internal/handlers"
	"txn-search/internal/middleware"
	"txn-search/internal/services"
	"txn-search/internal/validation"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodySize = "1M"

// Server is the search API
type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger *slog.Logger
}

// NewLogger returns a JSON logger in production and a text logger elsewhere
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Log.Level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// New wires handlers and middleware around service
func New(cfg *config.Config, service services.SearchServiceInterface, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.GetValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))
	e.Use(echomw.BodyLimit(maxBodySize))

	searchHandler := handlers.NewSearchHandler(service, logger)
	healthHandler := handlers.NewHealthCheckHandler(service)
	limiter := middleware.RateLimiter(cfg.RateLimit.LimiterConfig())

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/search", searchHandler.ProxySearch, limiter)

	api := e.Group("/api/v1", limiter)
	api.POST("/transactions/search", searchHandler.SearchTransactions)

	return &Server{echo: e, cfg: cfg, logger: logger}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured address until Shutdown is called
func (s *Server) Start() error {
	addr := s.cfg.Server.Address()
	s.logger.Info("search API listening",
		"address", addr,
		"environment", s.cfg.Server.Environment,
		"index", s.cfg.Search.Index,
	)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
