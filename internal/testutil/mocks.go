// Package testutil provides shared mock implementations of domain
// interfaces for use in tests across the codebase.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"lakesync/internal/domain"
)

// === Catalog engine mock ===

// MockCatalogEngine implements domain.CatalogEngine for testing.
type MockCatalogEngine struct {
	StartQueryFn func(ctx context.Context, query string) (domain.QueryHandle, error)
	QueryStateFn func(ctx context.Context, handle domain.QueryHandle) (domain.QueryStatus, error)

	StartedQueries []string // collected submitted query texts
	StateCalls     int      // number of QueryState invocations
}

// StartQuery implements the interface method for testing.
func (m *MockCatalogEngine) StartQuery(ctx context.Context, query string) (domain.QueryHandle, error) {
	m.StartedQueries = append(m.StartedQueries, query)
	if m.StartQueryFn != nil {
		return m.StartQueryFn(ctx, query)
	}
	return domain.QueryHandle(fmt.Sprintf("exec-%d", len(m.StartedQueries))), nil
}

// QueryState implements the interface method for testing.
func (m *MockCatalogEngine) QueryState(ctx context.Context, handle domain.QueryHandle) (domain.QueryStatus, error) {
	m.StateCalls++
	if m.QueryStateFn != nil {
		return m.QueryStateFn(ctx, handle)
	}
	return domain.StatusSucceeded, nil
}

// === Object store mock ===

// MockObjectStore implements domain.ObjectStore backed by an in-memory map
// keyed "bucket/key".
type MockObjectStore struct {
	GetObjectFn func(ctx context.Context, bucket, key string) ([]byte, error)
	PutObjectFn func(ctx context.Context, bucket, key string, body []byte) error

	mu      sync.Mutex
	Objects map[string][]byte
}

// Put seeds an object for later retrieval.
func (m *MockObjectStore) Put(bucket, key string, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Objects == nil {
		m.Objects = make(map[string][]byte)
	}
	m.Objects[bucket+"/"+key] = body
}

// GetObject implements the interface method for testing.
func (m *MockObjectStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if m.GetObjectFn != nil {
		return m.GetObjectFn(ctx, bucket, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.Objects[bucket+"/"+key]
	if !ok {
		return nil, fmt.Errorf("object %s/%s not found", bucket, key)
	}
	return body, nil
}

// PutObject implements the interface method for testing.
func (m *MockObjectStore) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	if m.PutObjectFn != nil {
		return m.PutObjectFn(ctx, bucket, key, body)
	}
	m.Put(bucket, key, body)
	return nil
}

// === Source scanner mock ===

// MockSourceScanner implements domain.SourceScanner, delivering the
// configured pages in order.
type MockSourceScanner struct {
	ScanFn func(ctx context.Context, collection string, fn func(page int, rows []map[string]any) error) error
	Pages  [][]map[string]any
}

// Scan implements the interface method for testing.
func (m *MockSourceScanner) Scan(ctx context.Context, collection string, fn func(page int, rows []map[string]any) error) error {
	if m.ScanFn != nil {
		return m.ScanFn(ctx, collection, fn)
	}
	for i, rows := range m.Pages {
		if err := fn(i, rows); err != nil {
			return err
		}
	}
	return nil
}

// === Pipeline stage mocks ===

// MockSubmitter implements domain.QuerySubmitter for testing.
type MockSubmitter struct {
	SubmitFn func(ctx context.Context, query string) (domain.QueryHandle, error)
	Queries  []string
}

// Submit implements the interface method for testing.
func (m *MockSubmitter) Submit(ctx context.Context, query string) (domain.QueryHandle, error) {
	m.Queries = append(m.Queries, query)
	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, query)
	}
	return domain.QueryHandle(fmt.Sprintf("exec-%d", len(m.Queries))), nil
}

// MockWaiter implements domain.StatusWaiter for testing.
type MockWaiter struct {
	WaitFn  func(ctx context.Context, handle domain.QueryHandle) domain.QueryStatus
	Handles []domain.QueryHandle
}

// Wait implements the interface method for testing.
func (m *MockWaiter) Wait(ctx context.Context, handle domain.QueryHandle) domain.QueryStatus {
	m.Handles = append(m.Handles, handle)
	if m.WaitFn != nil {
		return m.WaitFn(ctx, handle)
	}
	return domain.StatusSucceeded
}

// MockFetcher implements domain.ResultFetcher for testing.
type MockFetcher struct {
	FetchFn func(ctx context.Context, handle domain.QueryHandle) ([]domain.RawRow, error)
	Handles []domain.QueryHandle
}

// Fetch implements the interface method for testing.
func (m *MockFetcher) Fetch(ctx context.Context, handle domain.QueryHandle) ([]domain.RawRow, error) {
	m.Handles = append(m.Handles, handle)
	if m.FetchFn != nil {
		return m.FetchFn(ctx, handle)
	}
	return []domain.RawRow{}, nil
}

// MockLoader implements domain.RecordLoader, collecting loaded batches per
// table for assertions.
type MockLoader struct {
	LoadFn func(ctx context.Context, records []domain.Record, table string) error
	Loads  map[string][]domain.Record
}

// Load implements the interface method for testing.
func (m *MockLoader) Load(ctx context.Context, records []domain.Record, table string) error {
	if m.LoadFn != nil {
		if err := m.LoadFn(ctx, records, table); err != nil {
			return err
		}
	}
	if m.Loads == nil {
		m.Loads = make(map[string][]domain.Record)
	}
	m.Loads[table] = append(m.Loads[table], records...)
	return nil
}
