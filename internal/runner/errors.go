package runner

import (
	"errors"
	"fmt"
)

// Configuration faults. These abort the run immediately; they are never
// converted into expectation results.
var (
	// ErrNoTestFiles is returned when a suite directory contains zero
	// matching test files after filtering.
	ErrNoTestFiles = errors.New("no test files matched")

	// ErrBadDescription is returned for an empty or all-blank context/check
	// description.
	ErrBadDescription = errors.New("description must be a non-empty string")

	// ErrNoPredicate is returned when Expect is called without a predicate.
	ErrNoPredicate = errors.New("expectation requires a predicate")

	// ErrNoSuchSuite is returned when a discovered suite file has no
	// registered body. It is the moral equivalent of a parse fault and is
	// fatal to the whole run.
	ErrNoSuchSuite = errors.New("no suite body registered")

	// ErrInvalidScope is returned when loading is attempted against a nil
	// controller or scope handle.
	ErrInvalidScope = errors.New("invalid scope handle")
)

// ReporterError marks a failure raised by a reporter. Unlike a check-body
// fault it is fatal: it propagates through the check boundary and fails the
// whole suite run.
type ReporterError struct {
	Err error
}

// Error implements the error interface.
func (e *ReporterError) Error() string {
	return fmt.Sprintf("reporter: %v", e.Err)
}

// Unwrap exposes the underlying reporter failure.
func (e *ReporterError) Unwrap() error {
	return e.Err
}

// IsReporterError reports whether err wraps a ReporterError.
func IsReporterError(err error) bool {
	var re *ReporterError
	return errors.As(err, &re)
}
