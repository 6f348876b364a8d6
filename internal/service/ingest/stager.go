// Package ingest stages raw source collections into the data lake so the
// catalog can register them as queryable tables. The sync core never calls
// into this package; the two sides share only configuration and the object
// store port.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"lakesync/internal/config"
	"lakesync/internal/domain"
)

// Stager scans one source collection end-to-end by page and uploads each
// page as a newline-delimited JSON object under the collection's staging
// prefix. One parameterized procedure covers every collection; only the
// collection name and prefix vary.
type Stager struct {
	scanner domain.SourceScanner
	store   domain.ObjectStore
	bucket  string
	logger  *slog.Logger
}

// StageSummary reports one staging pass.
type StageSummary struct {
	Collection string
	Pages      int // pages scanned
	Uploaded   int // pages successfully uploaded
	Rows       int
}

// NewStager creates a Stager writing to the given staging bucket.
func NewStager(scanner domain.SourceScanner, store domain.ObjectStore, bucket string, logger *slog.Logger) *Stager {
	return &Stager{
		scanner: scanner,
		store:   store,
		bucket:  bucket,
		logger:  logger.With("component", "stager"),
	}
}

// Stage scans collection and writes one object per non-empty page to
// {prefix}/{prefix}_pagina_{n}.json. An upload failure for one page is
// logged and does not stop the scan; a scan failure does.
func (s *Stager) Stage(ctx context.Context, collection, prefix string) (*StageSummary, error) {
	logger := s.logger.With("collection", collection, "prefix", prefix)
	summary := &StageSummary{Collection: collection}

	err := s.scanner.Scan(ctx, collection, func(page int, rows []map[string]any) error {
		summary.Pages++
		if len(rows) == 0 {
			logger.Warn("empty page, skipping", "page", page)
			return nil
		}

		body, err := encodeNDJSON(rows)
		if err != nil {
			return fmt.Errorf("encode page %d: %w", page, err)
		}

		key := fmt.Sprintf("%s/%s_pagina_%d.json", prefix, prefix, page)
		if err := s.store.PutObject(ctx, s.bucket, key, body); err != nil {
			logger.Error("page upload failed", "page", page, "key", key, "error", err)
			return nil
		}

		summary.Uploaded++
		summary.Rows += len(rows)
		logger.Info("page staged", "page", page, "key", key, "rows", len(rows))
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("scan %s: %w", collection, err)
	}

	logger.Info("collection staged",
		"pages", summary.Pages, "uploaded", summary.Uploaded, "rows", summary.Rows)
	return summary, nil
}

// StageAll stages every configured source collection concurrently. The
// first scan failure cancels the rest.
func (s *Stager) StageAll(ctx context.Context, sources []config.SourceSpec) ([]*StageSummary, error) {
	summaries := make([]*StageSummary, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			summary, err := s.Stage(ctx, src.Collection, src.Prefix)
			summaries[i] = summary
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return summaries, err
	}
	return summaries, nil
}

// encodeNDJSON renders rows as one JSON object per line.
func encodeNDJSON(rows []map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
