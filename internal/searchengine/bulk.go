package searchengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/elastic/go-elasticsearch/v8/esutil"
)

// BulkDocument is one document to index under an explicit id
type BulkDocument struct {
	ID     string
	Source interface{}
}

// BulkResult summarises a _bulk call
type BulkResult struct {
	Indexed int
	Failed  int
}

// BulkIndex indexes docs into the client's index. Rejected documents are counted
// as failed; a failed flush request is returned as an error.
func (c *Client) BulkIndex(ctx context.Context, docs []BulkDocument) (*BulkResult, error) {
	if len(docs) == 0 {
		return &BulkResult{}, nil
	}
	if c.es == nil {
		return nil, ErrNotConfigured
	}
	if err := c.breaker.Allow(); err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		flushErr error
	)

	header := http.Header{}
	if id := OpaqueID(ctx); id != "" {
		header.Set(OpaqueIDHeader, id)
	}

	indexer, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:     c.es,
		Index:      c.index,
		NumWorkers: 1,
		Header:     header,
		Timeout:    c.timeout,
		OnError: func(ctx context.Context, err error) {
			mu.Lock()
			defer mu.Unlock()
			if flushErr == nil {
				flushErr = err
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	for _, doc := range docs {
		source, err := json.Marshal(doc.Source)
		if err != nil {
			_ = indexer.Close(ctx)
			return nil, fmt.Errorf("failed to encode document %s: %w", doc.ID, err)
		}

		item := esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(source),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err == nil {
					c.logger.DebugContext(ctx, "document rejected",
						slog.String("id", item.DocumentID),
						slog.Int("status", res.Status),
						slog.String("reason", res.Error.Reason),
					)
				}
			},
		}
		if err := indexer.Add(ctx, item); err != nil {
			_ = indexer.Close(ctx)
			return nil, fmt.Errorf("failed to queue document %s: %w", doc.ID, err)
		}
	}

	if err := indexer.Close(ctx); err != nil {
		c.breaker.RecordFailure()
		return nil, fmt.Errorf("bulk indexing failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if flushErr != nil {
		c.breaker.RecordFailure()
		return nil, fmt.Errorf("bulk request failed: %w", flushErr)
	}
	c.breaker.RecordSuccess()

	stats := indexer.Stats()
	return &BulkResult{
		Indexed: int(stats.NumIndexed),
		Failed:  int(stats.NumFailed),
	}, nil
}
