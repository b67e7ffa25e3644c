// Package sqlite holds the shared SQLite plumbing: connection setup,
// versioned schema, transactions, statement building and error mapping.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/heartmarshall/wordcard-backend/internal/config"
)

const driverName = "sqlite"

// DSN builds the driver connection string for path. The path is
// percent-escaped into a file: URI, so '?', '#' and '%' in file names reach
// SQLite intact. Foreign keys are enabled on every connection and write
// transactions start IMMEDIATE so that concurrent writers queue on
// busy_timeout instead of failing on upgrade.
func DSN(path string, busyTimeoutMS int) string {
	return fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
		(&url.URL{Path: path}).EscapedPath(), busyTimeoutMS,
	)
}

// Open opens (or creates) the database file described by cfg, pings it and
// applies pending migrations.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open(driverName, DSN(cfg.Path, int(cfg.BusyTimeout.Milliseconds())))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
