package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"txn-search/internal/errors"
	"txn-search/internal/searchengine"
	"txn-search/internal/services"

	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 3 * time.Second

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	service services.SearchServiceInterface
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(service services.SearchServiceInterface) *HealthCheckHandler {
	return &HealthCheckHandler{service: service}
}

// HealthCheck reports whether the search engine is reachable
// @Summary Health check
// @Description Check API and search engine connectivity status
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,time=string} "Service is healthy"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_004 - Search engine URL not configured"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Service unavailable (search engine unreachable)"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		if stderrors.Is(err, searchengine.ErrNotConfigured) {
			return SendError(c, errors.SystemConfigurationError, errors.WithDetails("Search engine URL is not set"))
		}
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Search engine connection failed"))
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
