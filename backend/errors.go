package backend

import (
	"errors"
	"fmt"
)

// ErrNotFound maps the upstream 404s (unknown product, order, employee).
var ErrNotFound = errors.New("not found")

// NetworkError means the upstream never answered: DNS, refused
// connection, timeout. Always retryable by the operator.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unreachable during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// SubmissionError is a non-2xx answer from the upstream. Message keeps
// whatever detail the server sent so it can be shown inline.
type SubmissionError struct {
	StatusCode int
	Message    string
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend rejected request (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend rejected request (status %d)", e.StatusCode)
}
