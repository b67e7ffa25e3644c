// Package testhelper provides database fixtures for adapter tests.
package testhelper

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/wordcard-backend/internal/config"
)

// SetupTestDB opens a fresh database file in a per-test temp dir with all
// migrations applied. The connection is closed via t.Cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlite.Open(ctx, config.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "words.db"),
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 4,
	})
	if err != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	st, err := sqlite.BuildCount(table, nil)
	if err != nil {
		t.Fatalf("testhelper: build count: %v", err)
	}
	var n int
	if err := db.QueryRowContext(context.Background(), st.SQL, st.Args...).Scan(&n); err != nil {
		t.Fatalf("testhelper: count %s: %v", table, err)
	}
	return n
}
