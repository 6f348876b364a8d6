// Package domain defines core types, interfaces, and errors for the
// tenant data synchronizer.
package domain

import "fmt"

// SubmissionError indicates the catalog engine rejected a query at
// submission time. It is fatal to the entity kind and never retried.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string { return e.Message }

// FetchError indicates a query result could not be retrieved or parsed.
type FetchError struct {
	Message string
}

func (e *FetchError) Error() string { return e.Message }

// ConnectionError indicates the relational target could not be reached.
// It is fatal to the whole load call, unlike a single-record insert failure.
type ConnectionError struct {
	Message string
}

func (e *ConnectionError) Error() string { return e.Message }

// ErrSubmission creates a SubmissionError with a formatted message.
func ErrSubmission(format string, args ...interface{}) *SubmissionError {
	return &SubmissionError{Message: fmt.Sprintf(format, args...)}
}

// ErrFetch creates a FetchError with a formatted message.
func ErrFetch(format string, args ...interface{}) *FetchError {
	return &FetchError{Message: fmt.Sprintf(format, args...)}
}

// ErrConnection creates a ConnectionError with a formatted message.
func ErrConnection(format string, args ...interface{}) *ConnectionError {
	return &ConnectionError{Message: fmt.Sprintf(format, args...)}
}
