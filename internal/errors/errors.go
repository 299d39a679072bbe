// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrContextCanceled indicates context was canceled.
	ErrContextCanceled = errors.New("context canceled")

	// ErrOracleUnavailable indicates the intent oracle could not produce
	// a usable response after all attempts.
	ErrOracleUnavailable = errors.New("intent oracle unavailable")

	// ErrNoPending indicates a confirmation reply arrived without a
	// pending candidate list for the session.
	ErrNoPending = errors.New("no pending confirmation")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// CatalogError represents catalog source loading failures with context.
type CatalogError struct {
	Source string
	Err    error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog error (source=%s): %v", e.Source, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a new catalog error.
func NewCatalogError(source string, err error) *CatalogError {
	return &CatalogError{
		Source: source,
		Err:    err,
	}
}

// OracleError represents intent oracle failures with context.
type OracleError struct {
	Model string
	Err   error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle error (model=%s): %v", e.Model, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// NewOracleError creates a new oracle error.
func NewOracleError(model string, err error) *OracleError {
	return &OracleError{
		Model: model,
		Err:   err,
	}
}
