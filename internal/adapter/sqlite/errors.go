package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

// MapError converts driver errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
// Any other engine failure becomes a *domain.StorageError carrying the statement.
func MapError(err error, op string, st Statement) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	storageErr := domain.NewStorageError(op, st.SQL, err)

	var sqlErr *sqlitedrv.Error
	if errors.As(err, &sqlErr) {
		switch constraintKind(sqlErr) {
		case "unique":
			return fmt.Errorf("%w: %w", domain.ErrAlreadyExists, storageErr)
		case "foreignkey":
			return fmt.Errorf("%w: %w", domain.ErrNotFound, storageErr)
		case "check", "notnull":
			return fmt.Errorf("%w: %w", domain.ErrValidation, storageErr)
		}
	}

	return storageErr
}

// constraintKind classifies constraint failures by extended result code,
// falling back to the message when only the primary code is reported.
func constraintKind(e *sqlitedrv.Error) string {
	switch e.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return "unique"
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return "foreignkey"
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return "check"
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return "notnull"
	}

	if e.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return ""
	}
	msg := e.Error()
	switch {
	case strings.Contains(msg, "UNIQUE"):
		return "unique"
	case strings.Contains(msg, "FOREIGN KEY"):
		return "foreignkey"
	case strings.Contains(msg, "CHECK"):
		return "check"
	case strings.Contains(msg, "NOT NULL"):
		return "notnull"
	}
	return ""
}
