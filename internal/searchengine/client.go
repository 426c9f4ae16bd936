// Package searchengine is the transport to the transaction search index.
// Every call carries the configured API key; bodies are sent and returned as JSON.
package searchengine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"txn-search/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	DefaultIndex   = "transaction_index"
	DefaultTimeout = 30 * time.Second
)

// ErrNotConfigured is returned by every call of a client built without a base URL
var ErrNotConfigured = errors.New("search engine URL is not configured")

// EngineError is returned when the engine answers with an error status
type EngineError struct {
	StatusCode int
	Body       []byte
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("search engine returned status %d: %s", e.StatusCode, truncate(string(e.Body), 512))
}

// Config holds the engine location and credentials
type Config struct {
	BaseURL string
	APIKey  string
	Index   string
	Timeout time.Duration
	Breaker CircuitBreakerConfig
	// Transport replaces http.DefaultTransport when set
	Transport http.RoundTripper
}

// Client talks to the engine through the official client with retries disabled
type Client struct {
	es      *elasticsearch.Client
	baseURL string
	index   string
	timeout time.Duration
	breaker *CircuitBreaker
	logger  *slog.Logger
}

// NewClient creates a client for cfg. A base URL without scheme defaults to https.
// An empty base URL yields a client whose calls fail until one is configured.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Index == "" {
		cfg.Index = DefaultIndex
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Breaker.MaxFailures <= 0 {
		cfg.Breaker = DefaultCircuitBreakerConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL: normalizeURL(cfg.BaseURL),
		index:   cfg.Index,
		timeout: cfg.Timeout,
		breaker: NewCircuitBreaker(cfg.Breaker),
		logger:  logger,
	}
	if c.baseURL == "" {
		return c, nil
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{c.baseURL},
		APIKey:       cfg.APIKey,
		Transport:    cfg.Transport,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search engine client: %w", err)
	}
	c.es = es
	return c, nil
}

// Index returns the index searches are sent to
func (c *Client) Index() string {
	return c.index
}

// BreakerState reports the current circuit breaker state
func (c *Client) BreakerState() BreakerState {
	return c.breaker.State()
}

// Forward posts body unmodified to the index _search endpoint and returns the raw response
func (c *Client) Forward(ctx context.Context, body []byte) ([]byte, error) {
	return c.perform(ctx, "search", func(ctx context.Context) (*esapi.Response, error) {
		opts := []func(*esapi.SearchRequest){
			c.es.Search.WithContext(ctx),
			c.es.Search.WithIndex(c.index),
			c.es.Search.WithBody(bytes.NewReader(body)),
		}
		if id := OpaqueID(ctx); id != "" {
			opts = append(opts, c.es.Search.WithOpaqueID(id))
		}
		return c.es.Search(opts...)
	})
}

// Search sends a built request and decodes the response
func (c *Client) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	raw, err := c.Forward(ctx, body)
	if err != nil {
		return nil, err
	}

	var res models.SearchResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &res, nil
}

// Ping checks that the engine is reachable and accepts the credentials
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.perform(ctx, "ping", func(ctx context.Context) (*esapi.Response, error) {
		opts := []func(*esapi.PingRequest){c.es.Ping.WithContext(ctx)}
		if id := OpaqueID(ctx); id != "" {
			opts = append(opts, c.es.Ping.WithOpaqueID(id))
		}
		return c.es.Ping(opts...)
	})
	return err
}

// perform runs one engine call behind the breaker and the client timeout.
// Status 5xx and transport failures count against the breaker; 4xx does not.
func (c *Client) perform(ctx context.Context, op string, call func(context.Context) (*esapi.Response, error)) ([]byte, error) {
	if c.es == nil {
		return nil, ErrNotConfigured
	}
	if err := c.breaker.Allow(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	res, err := call(ctx)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, fmt.Errorf("search engine request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, fmt.Errorf("failed to read search engine response: %w", err)
	}

	c.logger.DebugContext(ctx, "search engine call",
		slog.String("op", op),
		slog.String("index", c.index),
		slog.Int("status", res.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if res.StatusCode >= http.StatusInternalServerError {
		c.breaker.RecordFailure()
	} else {
		c.breaker.RecordSuccess()
	}

	if res.IsError() {
		return nil, &EngineError{StatusCode: res.StatusCode, Body: body}
	}
	return body, nil
}

func normalizeURL(url string) string {
	if url == "" {
		return ""
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return strings.TrimRight(url, "/")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...TRUNCATED"
}
