package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lakesync/internal/config"
	"lakesync/internal/testutil"
)

func newStager(scanner *testutil.MockSourceScanner, store *testutil.MockObjectStore) *Stager {
	return NewStager(scanner, store, "staging", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStage_WritesOnePagePerObject(t *testing.T) {
	scanner := &testutil.MockSourceScanner{
		Pages: [][]map[string]any{
			{{"id": "1"}, {"id": "2"}},
			{{"id": "3"}},
		},
	}
	store := &testutil.MockObjectStore{}

	summary, err := newStager(scanner, store).Stage(context.Background(), "billing-dev", "billing")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Pages)
	assert.Equal(t, 2, summary.Uploaded)
	assert.Equal(t, 3, summary.Rows)

	body, ok := store.Objects["staging/billing/billing_pagina_0.json"]
	require.True(t, ok)
	assert.Equal(t, "{\"id\":\"1\"}\n{\"id\":\"2\"}\n", string(body))

	_, ok = store.Objects["staging/billing/billing_pagina_1.json"]
	assert.True(t, ok)
}

func TestStage_SkipsEmptyPages(t *testing.T) {
	scanner := &testutil.MockSourceScanner{
		Pages: [][]map[string]any{
			{{"id": "1"}},
			{},
			{{"id": "2"}},
		},
	}
	store := &testutil.MockObjectStore{}

	summary, err := newStager(scanner, store).Stage(context.Background(), "orders-dev", "orders")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Pages)
	assert.Equal(t, 2, summary.Uploaded)
	assert.Contains(t, store.Objects, "staging/orders/orders_pagina_0.json")
	assert.NotContains(t, store.Objects, "staging/orders/orders_pagina_1.json")
	assert.Contains(t, store.Objects, "staging/orders/orders_pagina_2.json")
}

func TestStage_UploadFailureDoesNotStopScan(t *testing.T) {
	scanner := &testutil.MockSourceScanner{
		Pages: [][]map[string]any{
			{{"id": "1"}},
			{{"id": "2"}},
		},
	}
	calls := 0
	store := &testutil.MockObjectStore{
		PutObjectFn: func(ctx context.Context, bucket, key string, body []byte) error {
			calls++
			if calls == 1 {
				return errors.New("slow down")
			}
			return nil
		},
	}

	summary, err := newStager(scanner, store).Stage(context.Background(), "billing-dev", "billing")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Pages)
	assert.Equal(t, 1, summary.Uploaded)
	assert.Equal(t, 1, summary.Rows)
	assert.Equal(t, 2, calls)
}

func TestStage_ScanFailureStops(t *testing.T) {
	scanner := &testutil.MockSourceScanner{
		ScanFn: func(ctx context.Context, collection string, fn func(page int, rows []map[string]any) error) error {
			if err := fn(0, []map[string]any{{"id": "1"}}); err != nil {
				return err
			}
			return errors.New("table gone")
		},
	}
	store := &testutil.MockObjectStore{}

	summary, err := newStager(scanner, store).Stage(context.Background(), "billing-dev", "billing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan billing-dev")
	assert.Equal(t, 1, summary.Uploaded)
}

func TestStageAll(t *testing.T) {
	scanner := &testutil.MockSourceScanner{
		Pages: [][]map[string]any{{{"id": "1"}}},
	}
	store := &testutil.MockObjectStore{}
	sources := []config.SourceSpec{
		{Collection: "billing-dev", Prefix: "billing"},
		{Collection: "orders-dev", Prefix: "orders"},
	}

	summaries, err := newStager(scanner, store).StageAll(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Contains(t, store.Objects, "staging/billing/billing_pagina_0.json")
	assert.Contains(t, store.Objects, "staging/orders/orders_pagina_0.json")
}

func TestStageAll_FailureSurfaces(t *testing.T) {
	scanner := &testutil.MockSourceScanner{
		ScanFn: func(ctx context.Context, collection string, fn func(page int, rows []map[string]any) error) error {
			if collection == "orders-dev" {
				return errors.New("throttled")
			}
			return fn(0, []map[string]any{{"id": "1"}})
		},
	}
	store := &testutil.MockObjectStore{}
	sources := []config.SourceSpec{
		{Collection: "billing-dev", Prefix: "billing"},
		{Collection: "orders-dev", Prefix: "orders"},
	}

	_, err := newStager(scanner, store).StageAll(context.Background(), sources)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
