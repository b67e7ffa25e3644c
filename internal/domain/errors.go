package domain

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrValidation          = errors.New("validation error")
	ErrStorage             = errors.New("storage error")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// StorageError reports a statement the database engine rejected.
// Err carries a stack trace captured where the error was created.
type StorageError struct {
	Op        string
	Statement string
	Err       error
}

// NewStorageError wraps err and records the failing statement.
func NewStorageError(op, statement string, err error) *StorageError {
	return &StorageError{Op: op, Statement: statement, Err: pkgerrors.WithStack(err)}
}

func (e *StorageError) Error() string {
	if e.Statement == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v [%s]", e.Op, e.Err, e.Statement)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports ErrStorage as a match so callers need not type-assert.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// StackTrace exposes the stack recorded when the error was created.
func (e *StorageError) StackTrace() pkgerrors.StackTrace {
	var st interface{ StackTrace() pkgerrors.StackTrace }
	if errors.As(e.Err, &st) {
		return st.StackTrace()
	}
	return nil
}
