package catalog

import (
	"context"
	"log/slog"

	"lakesync/internal/domain"
)

// Compile-time check: Executor implements the submitter port.
var _ domain.QuerySubmitter = (*Executor)(nil)

// Executor submits named queries to the catalog engine. A rejected
// submission is a hard failure for that entity kind; it is never retried.
type Executor struct {
	engine domain.CatalogEngine
	logger *slog.Logger
}

// NewExecutor creates an Executor on top of a catalog engine.
func NewExecutor(engine domain.CatalogEngine, logger *slog.Logger) *Executor {
	return &Executor{
		engine: engine,
		logger: logger.With("component", "executor"),
	}
}

// Submit starts asynchronous execution of the query and returns its handle.
// No local state is retained beyond the handle.
func (e *Executor) Submit(ctx context.Context, query string) (domain.QueryHandle, error) {
	handle, err := e.engine.StartQuery(ctx, query)
	if err != nil {
		return "", domain.ErrSubmission("submit query: %v", err)
	}
	e.logger.Info("query submitted", "handle", string(handle))
	return handle, nil
}
