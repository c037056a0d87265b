// Package common provides shared utilities and types used across the
// application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Pre-flight path errors. Both abort a run before any mutation.
	ErrSpreadsheetMissing = errors.New("spreadsheet file does not exist")
	ErrBaseDirMissing     = errors.New("base directory does not exist")

	// ErrSpreadsheetRead indicates the tabular source could not be opened or
	// parsed at all.
	ErrSpreadsheetRead = errors.New("spreadsheet read failed")

	// ErrMoveFailed indicates a filesystem move failed mid-run. Earlier
	// moves stay moved; there is no rollback.
	ErrMoveFailed = errors.New("folder move failed")

	// ErrInvalidRanges indicates the configured ranges did not validate.
	ErrInvalidRanges = errors.New("invalid range configuration")
)

// UserError represents an error that should be shown to the operator.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// ValidationErrors batches per-range validation failures so the operator
// sees every problem at once instead of fixing them one by one.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the batched errors to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error {
	return v
}
