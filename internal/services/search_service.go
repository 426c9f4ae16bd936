package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"txn-search/internal/models"
	"txn-search/internal/query"
	"txn-search/internal/searchengine"
	"txn-search/internal/validation"
)

// ErrTransport marks a search that failed between the service and the engine
var ErrTransport = errors.New("transport error")

// SearchService validates filters, builds the engine request and decodes the hits
type SearchService struct {
	engine    SearchEngineInterface
	validator FilterValidatorInterface
	metrics   MetricsRecorderInterface
	logger    *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	engine SearchEngineInterface,
	validator FilterValidatorInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) SearchServiceInterface {
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		engine:    engine,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Search runs one transaction search. Validation failures are returned as-is and
// nothing is sent; engine failures are wrapped with ErrTransport.
func (s *SearchService) Search(ctx context.Context, filters models.FilterState, pagination models.Pagination) (*models.SearchResult, error) {
	start := time.Now()

	if err := s.validator.ValidateFilters(filters); err != nil {
		s.metrics.IncrementCounter("search_validation_failed", map[string]string{"reason": validationReason(err)})
		s.metrics.IncrementCounter("search_request", map[string]string{"status": "rejected"})
		return nil, err
	}

	applied, _, _ := filters.AppliedDateRange()
	if supplied := filters.SuppliedDateRanges(); len(supplied) > 1 {
		s.logger.WarnContext(ctx, "multiple date ranges supplied, only one is applied",
			slog.String("applied", string(applied)),
			slog.Any("supplied", supplied),
		)
	}

	req := query.Build(filters, pagination)

	res, err := s.engine.Search(ctx, req)
	s.recordBreakerState()
	if err != nil {
		s.metrics.IncrementCounter("search_request", map[string]string{"status": "failed"})
		s.logger.ErrorContext(ctx, "transaction search failed",
			slog.String("error", err.Error()),
			slog.Int("from", req.From),
			slog.Int("size", req.Size),
		)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	rows, err := res.Transactions()
	if err != nil {
		s.metrics.IncrementCounter("search_request", map[string]string{"status": "failed"})
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	s.metrics.IncrementCounter("search_request", map[string]string{"status": "success"})
	s.metrics.RecordProcessingTime("search", time.Since(start))
	s.metrics.RecordGauge("search_total_hits", float64(res.Hits.Total.Value), nil)

	return &models.SearchResult{
		Transactions:     rows,
		Total:            res.Hits.Total.Value,
		Pagination:       pagination,
		AppliedDateField: applied,
	}, nil
}

// Forward passes a caller-built search body to the engine unmodified
func (s *SearchService) Forward(ctx context.Context, body []byte) ([]byte, error) {
	start := time.Now()

	raw, err := s.engine.Forward(ctx, body)
	s.recordBreakerState()
	s.metrics.RecordProcessingTime("proxy_forward", time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter("proxy_forward", map[string]string{"status": "failed"})
		return nil, err
	}

	s.metrics.IncrementCounter("proxy_forward", map[string]string{"status": "success"})
	return raw, nil
}

// Ping checks engine reachability
func (s *SearchService) Ping(ctx context.Context) error {
	return s.engine.Ping(ctx)
}

func (s *SearchService) recordBreakerState() {
	s.metrics.RecordGauge("circuit_breaker_state", float64(s.engine.BreakerState()), map[string]string{"service": "search_engine"})
}

func validationReason(err error) string {
	switch {
	case errors.Is(err, validation.ErrMissingAccountNumber):
		return "missing_account_number"
	case errors.Is(err, validation.ErrMissingDateRange):
		return "missing_date_range"
	case errors.Is(err, validation.ErrRangeTooWide):
		return "range_too_wide"
	case errors.Is(err, validation.ErrRangeTooOld):
		return "range_too_old"
	case errors.Is(err, validation.ErrRangeReversed):
		return "range_reversed"
	}
	return "other"
}

// IsCircuitOpen reports whether err came from an open circuit breaker
func IsCircuitOpen(err error) bool {
	return errors.Is(err, searchengine.ErrCircuitBreakerOpen)
}
