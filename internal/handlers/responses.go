package handlers

import (
	"net/http"

	"txn-search/internal/errors"
	"txn-search/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// Handlers under /api use the following response helpers:
//
// 1. SendError - client and search rule errors (4xx) and engine failures (502/503)
//    - Filter rules: SendError(c, errors.SearchRangeTooWide)
//    - Bad body: SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//
// 2. SendValidationError - request DTO failures with one detail per field
//
// 3. SendSystemError - unexpected internal errors (500), details are never exposed
//
// The /search proxy keeps its own {"error","details"} body, see SendProxyError.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"

	proxyErrorMessage = "Internal Server Error"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	errorResponse := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendValidationError sends a VALIDATION_* error with one detail per invalid field
func SendValidationError(c echo.Context, errs validator.ValidationErrors) error {
	errorResponse := errors.NewValidationError(validation.ErrorCode(errs), validation.FieldErrors(errs), getTraceID(c))
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message
func SendSystemError(c echo.Context, err error) error {
	errorResponse, _ := errors.WrapSystemError(err, getTraceID(c))
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendProxyError sends the proxy failure body. details is the engine's own
// error body when it returned one, otherwise the error text.
func SendProxyError(c echo.Context, details interface{}) error {
	return c.JSON(http.StatusInternalServerError, errors.ProxyErrorResponse{
		Error:   proxyErrorMessage,
		Details: details,
	})
}
