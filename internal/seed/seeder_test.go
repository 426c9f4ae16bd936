package seed

import (
	"context"
	"errors"
	"testing"

	"txn-search/internal/searchengine"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingIndexer struct {
	batches []int
	failAt  int
}

func (r *recordingIndexer) BulkIndex(_ context.Context, docs []searchengine.BulkDocument) (*searchengine.BulkResult, error) {
	r.batches = append(r.batches, len(docs))
	if r.failAt > 0 && len(r.batches) == r.failAt {
		return nil, errors.New("bulk rejected")
	}
	return &searchengine.BulkResult{Indexed: len(docs)}, nil
}

func TestSeeder_SplitsIntoBatches(t *testing.T) {
	indexer := &recordingIndexer{}
	seeder := NewSeeder(indexer, newTestGenerator(), 40, nil)

	summary, err := seeder.Run(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, []int{40, 40, 20}, indexer.batches)
	assert.Equal(t, Summary{Batches: 3, Indexed: 100}, summary)
}

func TestSeeder_StopsOnBatchError(t *testing.T) {
	indexer := &recordingIndexer{failAt: 2}
	seeder := NewSeeder(indexer, newTestGenerator(), 10, nil)

	summary, err := seeder.Run(context.Background(), 50)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch 2 failed")
	assert.Equal(t, Summary{Batches: 1, Indexed: 10}, summary)
}

func TestSeeder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := NewSeeder(&recordingIndexer{}, newTestGenerator(), 0, nil).Run(ctx, 10)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, summary.Batches)
}

func TestSeeder_BulkIndexesThroughClient(t *testing.T) {
	defer gock.Off()
	gock.DisableNetworking()

	gock.New("http://es.example.com").
		Post("/transaction_index/_bulk").
		MatchHeader("Authorization", "ApiKey seed-key").
		Reply(200).
		SetHeader("X-Elastic-Product", "Elasticsearch").
		JSON(map[string]interface{}{
			"errors": true,
			"items": []map[string]interface{}{
				{"index": map[string]interface{}{"status": 201}},
				{"index": map[string]interface{}{"status": 201}},
				{"index": map[string]interface{}{"status": 400}},
			},
		})

	client, err := searchengine.NewClient(searchengine.Config{
		BaseURL:   "http://es.example.com",
		APIKey:    "seed-key",
		Transport: gock.DefaultTransport,
	}, nil)
	require.NoError(t, err)
	summary, err := NewSeeder(client, newTestGenerator(), 10, nil).Run(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, Summary{Batches: 1, Indexed: 2, Failed: 1}, summary)
	assert.True(t, gock.IsDone())
}
