package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

var testStmt = Statement{SQL: "INSERT INTO words (text) VALUES (?)", Args: []any{"x"}}

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "insert word", testStmt); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(fmt.Errorf("scan: %w", sql.ErrNoRows), "resolve word", testStmt)
	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
	if errors.Is(got, domain.ErrStorage) {
		t.Error("a missing row is not a storage failure")
	}
}

func TestMapError_ContextPassThrough(t *testing.T) {
	t.Parallel()

	for _, cause := range []error{context.Canceled, context.DeadlineExceeded} {
		got := MapError(cause, "list words", testStmt)
		if !errors.Is(got, cause) {
			t.Errorf("MapError(%v) lost the context error: %v", cause, got)
		}
		if errors.Is(got, domain.ErrStorage) {
			t.Errorf("MapError(%v) should not be a storage error", cause)
		}
	}
}

func TestMapError_OtherBecomesStorageError(t *testing.T) {
	t.Parallel()

	got := MapError(errors.New("disk I/O error"), "insert word", testStmt)

	var se *domain.StorageError
	if !errors.As(got, &se) {
		t.Fatalf("expected *domain.StorageError, got %T", got)
	}
	if se.Statement != testStmt.SQL || se.Op != "insert word" {
		t.Errorf("unexpected storage error fields: %+v", se)
	}
}
