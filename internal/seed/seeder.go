package seed

import (
	"context"
	"fmt"
	"log/slog"

	"txn-search/internal/searchengine"
)

const DefaultBatchSize = 500

// Indexer stores a batch of documents
type Indexer interface {
	BulkIndex(ctx context.Context, docs []searchengine.BulkDocument) (*searchengine.BulkResult, error)
}

// Summary totals a seeding run
type Summary struct {
	Batches int
	Indexed int
	Failed  int
}

// Seeder generates documents and indexes them batch by batch
type Seeder struct {
	indexer   Indexer
	generator *Generator
	batchSize int
	logger    *slog.Logger
}

// NewSeeder creates a seeder; a non-positive batch size uses DefaultBatchSize
func NewSeeder(indexer Indexer, generator *Generator, batchSize int, logger *slog.Logger) *Seeder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		indexer:   indexer,
		generator: generator,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run indexes total documents. It stops at the first failed batch request;
// per-document failures are counted and do not stop the run.
func (s *Seeder) Run(ctx context.Context, total int) (Summary, error) {
	var summary Summary

	for remaining := total; remaining > 0; remaining -= s.batchSize {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		n := min(remaining, s.batchSize)
		res, err := s.indexer.BulkIndex(ctx, s.generator.Batch(n))
		if err != nil {
			return summary, fmt.Errorf("batch %d failed: %w", summary.Batches+1, err)
		}

		summary.Batches++
		summary.Indexed += res.Indexed
		summary.Failed += res.Failed

		s.logger.InfoContext(ctx, "indexed batch",
			"batch", summary.Batches,
			"indexed", res.Indexed,
			"failed", res.Failed,
			"progress", fmt.Sprintf("%d/%d", total-remaining+n, total),
		)
	}

	return summary, nil
}
