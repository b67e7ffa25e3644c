package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("word", "required")

	if got := err.Error(); got != "validation: word: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "word", Message: "required"},
		{Field: "context", Message: "too long"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestStorageError(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk I/O error")
	err := NewStorageError("insert word", "INSERT INTO words (text) VALUES (?)", cause)
	wrapped := fmt.Errorf("upsert: %w", err)

	if !errors.Is(wrapped, ErrStorage) {
		t.Fatal("errors.Is(wrapped, ErrStorage) = false")
	}
	if !errors.Is(wrapped, cause) {
		t.Fatal("StorageError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "INSERT INTO words") {
		t.Errorf("Error() should carry the statement, got %q", err.Error())
	}
	if len(err.StackTrace()) == 0 {
		t.Error("expected a captured stack trace")
	}

	var se *StorageError
	if !errors.As(wrapped, &se) || se.Op != "insert word" {
		t.Fatalf("errors.As failed or wrong op: %+v", se)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrStorage, ErrUpstreamUnavailable,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
