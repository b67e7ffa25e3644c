package wordstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

// UpsertWord inserts the word if absent and returns its id. The mastery
// flag is always overwritten with mastered, for new and existing words alike.
func (s *Store) UpsertWord(ctx context.Context, text string, mastered bool) (int64, error) {
	if text == "" {
		return 0, domain.NewValidationError("word", "required")
	}

	var id int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		st, err := sqlite.BuildInsertIgnore(tableWords, sqlite.Fields{
			{Name: "text", Value: text},
			{Name: "created_at", Value: s.now()},
		}, "text")
		if err != nil {
			return err
		}
		if _, err := s.exec(ctx, "insert word", st); err != nil {
			return err
		}

		id, err = s.ResolveWordID(ctx, text)
		if err != nil {
			return err
		}
		return s.SetMastered(ctx, domain.ByID(id), mastered)
	})
	if err != nil {
		return 0, fmt.Errorf("wordstore.UpsertWord %q: %w", text, err)
	}
	return id, nil
}

// DeleteWord removes the word and, by cascade, everything attached to it.
func (s *Store) DeleteWord(ctx context.Context, text string) error {
	st, err := sqlite.BuildDelete(tableWords, sqlite.Filter{"text": text})
	if err != nil {
		return fmt.Errorf("wordstore.DeleteWord: %w", err)
	}

	res, err := s.exec(ctx, "delete word", st)
	if err != nil {
		return fmt.Errorf("wordstore.DeleteWord %q: %w", text, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("wordstore.DeleteWord %q: rows affected: %w", text, err)
	}
	if n == 0 {
		return fmt.Errorf("wordstore.DeleteWord %q: %w", text, domain.ErrNotFound)
	}
	return nil
}

// ListWords returns the text of every stored word in insertion order.
func (s *Store) ListWords(ctx context.Context) ([]string, error) {
	st, err := sqlite.BuildSelect(tableWords, []string{"text"}, nil, "id")
	if err != nil {
		return nil, fmt.Errorf("wordstore.ListWords: %w", err)
	}
	return s.queryStrings(ctx, "wordstore.ListWords", st)
}

// Purge deletes every row from the given tables (all store tables when none
// are given) and returns how many words were removed. A failing table does
// not stop the others; failures are joined into the returned error.
func (s *Store) Purge(ctx context.Context, tables ...string) (int64, error) {
	if len(tables) == 0 {
		tables = Tables
	}

	var (
		removed int64
		errs    []error
	)
	for _, table := range tables {
		if !slices.Contains(Tables, table) {
			errs = append(errs, domain.NewValidationError("table", fmt.Sprintf("unknown table %q", table)))
			continue
		}

		st, err := sqlite.BuildDelete(table, nil)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		res, err := s.exec(ctx, "purge "+table, st)
		if err != nil {
			s.log.WarnContext(ctx, "purge table failed",
				slog.String("table", table),
				slog.String("error", err.Error()),
			)
			errs = append(errs, err)
			continue
		}
		if table == tableWords {
			if n, err := res.RowsAffected(); err == nil {
				removed = n
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return removed, fmt.Errorf("wordstore.Purge: %w", err)
	}
	return removed, nil
}

// Stats returns row counts for the store tables.
func (s *Store) Stats(ctx context.Context) (domain.StoreStats, error) {
	var (
		stats domain.StoreStats
		err   error
	)
	if stats.Words, err = s.count(ctx, "count words", tableWords, nil); err != nil {
		return domain.StoreStats{}, fmt.Errorf("wordstore.Stats: %w", err)
	}
	if stats.Contexts, err = s.count(ctx, "count contexts", tableContexts, nil); err != nil {
		return domain.StoreStats{}, fmt.Errorf("wordstore.Stats: %w", err)
	}
	if stats.Definitions, err = s.count(ctx, "count definitions", tableDefinitions, nil); err != nil {
		return domain.StoreStats{}, fmt.Errorf("wordstore.Stats: %w", err)
	}
	if stats.Mastered, err = s.count(ctx, "count mastered", tableMastery, sqlite.Filter{"mastered": true}); err != nil {
		return domain.StoreStats{}, fmt.Errorf("wordstore.Stats: %w", err)
	}
	return stats, nil
}

func (s *Store) queryStrings(ctx context.Context, op string, st sqlite.Statement) ([]string, error) {
	rows, err := sqlite.Query(ctx, s.q(ctx), st)
	if err != nil {
		return nil, sqlite.MapError(err, op, st)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, sqlite.MapError(err, op, st)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err, op, st)
	}
	return out, nil
}
