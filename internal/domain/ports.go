package domain

import "context"

// CatalogEngine is the external query service that executes SQL over the
// staged catalog tables and persists results as an object keyed by handle.
// Implemented by catalog.AthenaEngine.
type CatalogEngine interface {
	// StartQuery submits a query for asynchronous execution.
	StartQuery(ctx context.Context, query string) (QueryHandle, error)
	// QueryState returns the engine-side status of a submitted query.
	QueryState(ctx context.Context, handle QueryHandle) (QueryStatus, error)
}

// ObjectStore provides read/write access to bucketed byte objects.
// The core only reads (query results); the ingestion collaborator writes
// staged pages. Implemented by storage.S3Store.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, body []byte) error
}

// SourceScanner walks a source collection end-to-end by page, delivering
// each page's records as plain rows. Implemented by ingest.DynamoScanner.
type SourceScanner interface {
	Scan(ctx context.Context, collection string, fn func(page int, rows []map[string]any) error) error
}

// QuerySubmitter submits one catalog query and returns its handle.
type QuerySubmitter interface {
	Submit(ctx context.Context, query string) (QueryHandle, error)
}

// StatusWaiter blocks until a submitted query reaches a terminal status or
// the poll budget runs out. StatusTimedOut is a normal outcome callers must
// check, not an error.
type StatusWaiter interface {
	Wait(ctx context.Context, handle QueryHandle) QueryStatus
}

// ResultFetcher retrieves the tabular output of a succeeded query. An empty
// result set is an empty slice, not an error.
type ResultFetcher interface {
	Fetch(ctx context.Context, handle QueryHandle) ([]RawRow, error)
}

// RecordLoader persists records into a named target table with per-record
// isolation and a single commit per call.
type RecordLoader interface {
	Load(ctx context.Context, records []Record, table string) error
}

// EntityTransformer converts raw catalog rows into load-ready records for
// one entity kind. Derived is non-empty only for kinds that emit a secondary
// relationship set (Order).
type EntityTransformer interface {
	Transform(kind EntityKind, rows []RawRow) (records []Record, derived []Record, err error)
}
