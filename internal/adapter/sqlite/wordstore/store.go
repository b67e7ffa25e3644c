// Package wordstore persists words, their contexts, definitions and mastery
// flags, and reconciles canonical records into that normalized form.
package wordstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/pkg/clock"
)

const (
	tableWords       = "words"
	tableContexts    = "contexts"
	tableDefinitions = "definitions"
	tableMastery     = "mastery"
)

// Tables lists every table the store owns, children before parents.
var Tables = []string{tableMastery, tableDefinitions, tableContexts, tableWords}

// Store is the word repository. It owns no connection lifecycle: the caller
// opens the database and closes it after the store is no longer used.
type Store struct {
	db  *sql.DB
	tx  *sqlite.TxManager
	log *slog.Logger
	now clock.Func
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces the timestamp source.
func WithClock(now clock.Func) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store over db.
func New(db *sql.DB, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		db:  db,
		tx:  sqlite.NewTxManager(db),
		log: logger.With("adapter", "wordstore"),
		now: clock.Unix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSchema applies any pending migrations. Safe to call repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	version, err := sqlite.Migrate(ctx, s.db)
	if err != nil {
		return fmt.Errorf("wordstore.EnsureSchema: %w", err)
	}
	s.log.DebugContext(ctx, "schema ready", slog.Int64("version", version))
	return nil
}

// SchemaVersion returns the applied schema version.
func (s *Store) SchemaVersion(ctx context.Context) (int64, error) {
	version, err := sqlite.SchemaVersion(ctx, s.db)
	if err != nil {
		return 0, fmt.Errorf("wordstore.SchemaVersion: %w", err)
	}
	return version, nil
}

func (s *Store) q(ctx context.Context) sqlite.Querier {
	return sqlite.QuerierFromCtx(ctx, s.db)
}

func (s *Store) exec(ctx context.Context, op string, st sqlite.Statement) (sql.Result, error) {
	res, err := sqlite.Exec(ctx, s.q(ctx), st)
	if err != nil {
		return nil, sqlite.MapError(err, op, st)
	}
	return res, nil
}

func (s *Store) count(ctx context.Context, op, table string, filter sqlite.Filter) (int, error) {
	st, err := sqlite.BuildCount(table, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	var n int
	if err := sqlite.QueryRow(ctx, s.q(ctx), st).Scan(&n); err != nil {
		return 0, sqlite.MapError(err, op, st)
	}
	return n, nil
}

// resolve turns a reference into a surrogate id. Id references are trusted;
// a stale id surfaces as a foreign key failure on write or as empty reads.
func (s *Store) resolve(ctx context.Context, ref domain.WordRef) (int64, error) {
	if id, ok := ref.ID(); ok {
		return id, nil
	}
	return s.ResolveWordID(ctx, ref.Text())
}

// ResolveWordID returns the id of the word with exactly this text.
func (s *Store) ResolveWordID(ctx context.Context, text string) (int64, error) {
	op := fmt.Sprintf("wordstore.ResolveWordID %q", text)

	st, err := sqlite.BuildSelect(tableWords, []string{"id"}, sqlite.Filter{"text": text})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	if err := sqlite.QueryRow(ctx, s.q(ctx), st).Scan(&id); err != nil {
		return 0, sqlite.MapError(err, op, st)
	}
	return id, nil
}
