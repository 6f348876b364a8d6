package catalog

import (
	"context"
	"log/slog"
	"time"

	"lakesync/internal/domain"
)

// Compile-time check: Waiter implements the waiter port.
var _ domain.StatusWaiter = (*Waiter)(nil)

// Waiter polls a submitted query at a fixed interval until it reaches a
// terminal status or the attempt budget runs out. The total wall-clock is
// bounded by maxAttempts × interval.
type Waiter struct {
	engine      domain.CatalogEngine
	maxAttempts int
	interval    time.Duration
	logger      *slog.Logger
}

// NewWaiter creates a Waiter with the given poll budget.
func NewWaiter(engine domain.CatalogEngine, maxAttempts int, interval time.Duration, logger *slog.Logger) *Waiter {
	return &Waiter{
		engine:      engine,
		maxAttempts: maxAttempts,
		interval:    interval,
		logger:      logger.With("component", "waiter"),
	}
}

// Wait blocks until the query is terminal or the budget is exhausted.
// Transient status-check errors are logged and counted against the same
// attempt budget; they never terminate the wait early. Exhausting the
// budget without ever resolving returns StatusTimedOut, which is a normal
// outcome the caller must check, not an error.
func (w *Waiter) Wait(ctx context.Context, handle domain.QueryHandle) domain.QueryStatus {
	logger := w.logger.With("handle", string(handle))

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		status, err := w.engine.QueryState(ctx, handle)
		if err != nil {
			logger.Warn("status check failed", "attempt", attempt, "error", err)
		} else if status.Terminal() {
			if status == domain.StatusSucceeded {
				logger.Info("query completed", "attempts", attempt)
			} else {
				logger.Error("query did not succeed", "status", string(status))
			}
			return status
		}

		select {
		case <-ctx.Done():
			logger.Warn("wait canceled", "error", ctx.Err())
			return domain.StatusTimedOut
		case <-time.After(w.interval):
		}
	}

	logger.Error("query exceeded poll budget", "attempts", w.maxAttempts)
	return domain.StatusTimedOut
}
