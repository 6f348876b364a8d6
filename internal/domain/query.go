package domain

// QueryHandle identifies one submitted catalog query. Handles are created by
// the executor, consumed by the waiter and fetcher, and discarded once the
// entity kind finishes. They are never persisted.
type QueryHandle string

// QueryStatus represents the lifecycle state of a catalog query.
type QueryStatus string

// Catalog query lifecycle statuses. The catalog engine drives the transition
// out of RUNNING; TIMED_OUT is a local decision made after the poll budget
// is exhausted.
const (
	StatusRunning   QueryStatus = "RUNNING"
	StatusSucceeded QueryStatus = "SUCCEEDED"
	StatusFailed    QueryStatus = "FAILED"
	StatusCancelled QueryStatus = "CANCELLED"
	StatusTimedOut  QueryStatus = "TIMED_OUT"
)

// Terminal reports whether the catalog engine will make no further progress
// on a query in this state.
func (s QueryStatus) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// RawRow is one result row exactly as the catalog's CSV output names it:
// column name to string value, no type coercion. Raw rows never survive past
// the transform stage — every load-ready record type is independent of
// catalog column naming.
type RawRow map[string]string
