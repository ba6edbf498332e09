// Package errors provides custom error types and exit codes for catfact.
package errors

import (
	"errors"
	"fmt"
)

// CatfactError is a custom error type that provides context about operations.
type CatfactError struct {
	Op     string // Operation being performed (e.g., "fetch fact", "write snapshot")
	Target string // Endpoint URL or file path involved
	Err    error  // Underlying error
}

// Error implements the error interface.
func (e *CatfactError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *CatfactError) Unwrap() error {
	return e.Err
}

// Predefined errors for common scenarios.
var (
	ErrNoFact           = fmt.Errorf("response contains no fact")
	ErrUnexpectedStatus = fmt.Errorf("unexpected HTTP status")
	ErrEmptyHistory     = fmt.Errorf("history is empty")
	ErrInvalidDelay     = fmt.Errorf("delay must not be negative")
)

// Exit codes - use these constants in CLI commands instead of hardcoding values.
const (
	ExitSuccess      = 0 // Success
	ExitGeneralError = 1 // General error (output, unexpected failures)
	ExitConfigError  = 2 // Configuration error (invalid env, flags)
	ExitFetchError   = 3 // No fact could be fetched
	ExitExportError  = 4 // Writing the history snapshot failed
)

// IsError checks if the given error matches the target error using errors.Is.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
