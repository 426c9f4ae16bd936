package services

import (
	"context"
	"time"

	"txn-search/internal/models"
	"txn-search/internal/searchengine"
)

// SearchEngineInterface is the transport to the transaction index
type SearchEngineInterface interface {
	Forward(ctx context.Context, body []byte) ([]byte, error)
	Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error)
	Ping(ctx context.Context) error
	BreakerState() searchengine.BreakerState
}

// FilterValidatorInterface gates which filter combinations may be searched
type FilterValidatorInterface interface {
	ValidateFilters(filters models.FilterState) error
}

// SearchServiceInterface runs validated, structured transaction searches
type SearchServiceInterface interface {
	Search(ctx context.Context, filters models.FilterState, pagination models.Pagination) (*models.SearchResult, error)
	Forward(ctx context.Context, body []byte) ([]byte, error)
	Ping(ctx context.Context) error
}

// MetricsRecorderInterface records operational metrics
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
