// Package results retrieves and parses completed query output.
package results

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"

	"lakesync/internal/domain"
)

// Compile-time check: Fetcher implements the fetcher port.
var _ domain.ResultFetcher = (*Fetcher)(nil)

// Fetcher locates a query's persisted result object by the engine's naming
// convention ({handle}.csv in the result bucket) and parses it as CSV with
// a header row. Callers must only fetch handles they have observed as
// SUCCEEDED.
type Fetcher struct {
	store  domain.ObjectStore
	bucket string
	logger *slog.Logger
}

// NewFetcher creates a Fetcher reading from the given result bucket.
func NewFetcher(store domain.ObjectStore, bucket string, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		store:  store,
		bucket: bucket,
		logger: logger.With("component", "fetcher"),
	}
}

// Fetch returns the query's rows keyed by header column name. A query that
// legitimately produced zero rows yields an empty slice and no error; a
// missing object or malformed CSV is a FetchError.
func (f *Fetcher) Fetch(ctx context.Context, handle domain.QueryHandle) ([]domain.RawRow, error) {
	key := string(handle) + ".csv"
	logger := f.logger.With("handle", string(handle), "key", key)

	data, err := f.store.GetObject(ctx, f.bucket, key)
	if err != nil {
		return nil, domain.ErrFetch("fetch result %s: %v", key, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	header, err := reader.Read()
	if err == io.EOF {
		logger.Warn("result object is empty")
		return []domain.RawRow{}, nil
	}
	if err != nil {
		return nil, domain.ErrFetch("parse result %s: %v", key, err)
	}

	rows := []domain.RawRow{}
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.ErrFetch("parse result %s: %v", key, err)
		}
		row := make(domain.RawRow, len(header))
		for i, name := range header {
			row[name] = fields[i]
		}
		rows = append(rows, row)
	}

	logger.Info("result fetched", "rows", len(rows))
	return rows, nil
}
