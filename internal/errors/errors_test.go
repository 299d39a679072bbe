package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCatalogErrorUnwrap(t *testing.T) {
	t.Parallel()

	err := NewCatalogError("entities.json", ErrNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected CatalogError to unwrap to ErrNotFound")
	}
	if got := err.Error(); got != "catalog error (source=entities.json): resource not found" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestOracleErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("decode response: %w", ErrInvalidInput)
	err := NewOracleError("glm-4.5", cause)
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("expected OracleError to unwrap through the chain")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("query", "must not be empty")
	if got := err.Error(); got != "validation failed on query: must not be empty" {
		t.Errorf("unexpected message: %s", got)
	}
}
