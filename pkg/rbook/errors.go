package rbook

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaDrift indicates the remote payload no longer matches the
// expected structure. It is never retried within a strategy; it triggers
// the next strategy instead.
var ErrSchemaDrift = errors.New("schema drift: payload does not match expected structure")

// ErrSessionAborted marks records left untouched when a caller cancels
// mid-session.
var ErrSessionAborted = errors.New("session aborted")

// AcquisitionError is returned when every strategy has been exhausted.
// It lists each attempt and why it failed.
type AcquisitionError struct {
	Scope    string
	Attempts []Attempt
}

func (e *AcquisitionError) Error() string {
	var parts []string
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Strategy, a.Err))
	}
	return fmt.Sprintf("acquisition failed for %s (%s)", e.Scope, strings.Join(parts, "; "))
}

// statusError is a transient-classifiable HTTP failure.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// retryable reports whether a status code is a transient server fault.
func (e *statusError) retryable() bool {
	return e.code >= 500 || e.code == 429
}
