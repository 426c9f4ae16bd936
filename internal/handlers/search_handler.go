package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"

	"txn-search/internal/dto"
	"txn-search/internal/errors"
	"txn-search/internal/searchengine"
	"txn-search/internal/services"
	"txn-search/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// maxProxyBodyBytes caps the body accepted by the search proxy
const maxProxyBodyBytes = 1 << 20

// SearchHandler serves the raw search proxy and the structured transaction search
type SearchHandler struct {
	service services.SearchServiceInterface
	logger  *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service services.SearchServiceInterface, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{service: service, logger: logger}
}

// ProxySearch forwards a search body to the transaction index unmodified
// @Summary Search proxy
// @Description Forwards the JSON body to the transaction index _search endpoint with the server's API key
// @Tags Search
// @Accept json
// @Produce json
// @Success 200 {object} object "Engine search response"
// @Failure 500 {object} errors.ProxyErrorResponse "Forwarding failed"
// @Router /search [post]
func (h *SearchHandler) ProxySearch(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxProxyBodyBytes))
	if err != nil {
		return SendProxyError(c, err.Error())
	}

	raw, err := h.service.Forward(c.Request().Context(), body)
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "Error querying Elasticsearch",
			"trace_id", getTraceID(c),
			"error", err.Error(),
		)
		return SendProxyError(c, proxyErrorDetails(err))
	}

	return c.JSONBlob(http.StatusOK, raw)
}

// SearchTransactions runs a validated transaction search
// @Summary Search transactions
// @Description Searches transactions of the given accounts within one date range, with optional text, type, currency and amount filters
// @Tags Search
// @Accept json
// @Produce json
// @Param request body dto.SearchTransactionsRequest true "Search filters and page"
// @Success 200 {object} dto.SearchTransactionsResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - VALIDATION_007, SEARCH_001 - SEARCH_004, SEARCH_006"
// @Failure 502 {object} errors.ErrorResponse "SEARCH_005 - Search engine failure"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_004 - Search engine not configured"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Search engine circuit open"
// @Router /api/v1/transactions/search [post]
func (h *SearchHandler) SearchTransactions(c echo.Context) error {
	var req dto.SearchTransactionsRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	req.Normalize()

	if err := c.Validate(&req); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			return SendValidationError(c, verrs)
		}
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	result, err := h.service.Search(c.Request().Context(), req.ToFilterState(), req.Pagination())
	if err != nil {
		if code, ok := searchErrorCode(err); ok {
			if code == errors.SearchTransportError {
				return SendError(c, code, errors.WithDetails(err.Error()))
			}
			return SendError(c, code)
		}
		h.logger.ErrorContext(c.Request().Context(), "transaction search failed",
			"trace_id", getTraceID(c),
			"error", err.Error(),
		)
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSearchTransactionsResponse(result))
}

// searchErrorCode maps a search failure to its API error code
func searchErrorCode(err error) (errors.ErrorCode, bool) {
	switch {
	case stderrors.Is(err, validation.ErrMissingAccountNumber):
		return errors.SearchMissingAccountNumber, true
	case stderrors.Is(err, validation.ErrMissingDateRange):
		return errors.SearchMissingDateRange, true
	case stderrors.Is(err, validation.ErrRangeTooWide):
		return errors.SearchRangeTooWide, true
	case stderrors.Is(err, validation.ErrRangeTooOld):
		return errors.SearchRangeTooOld, true
	case stderrors.Is(err, validation.ErrRangeReversed):
		return errors.SearchRangeReversed, true
	case stderrors.Is(err, searchengine.ErrNotConfigured):
		return errors.SystemConfigurationError, true
	case services.IsCircuitOpen(err):
		return errors.SystemServiceUnavailable, true
	case stderrors.Is(err, services.ErrTransport):
		return errors.SearchTransportError, true
	}
	return "", false
}

// proxyErrorDetails returns the engine's JSON error body when there is one
func proxyErrorDetails(err error) interface{} {
	var engineErr *searchengine.EngineError
	if stderrors.As(err, &engineErr) && json.Valid(engineErr.Body) {
		return json.RawMessage(engineErr.Body)
	}
	return err.Error()
}
