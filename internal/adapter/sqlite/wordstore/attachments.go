package wordstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

// SetMastered creates or overwrites the word's mastery row.
func (s *Store) SetMastered(ctx context.Context, ref domain.WordRef, mastered bool) error {
	id, err := s.resolve(ctx, ref)
	if err != nil {
		return fmt.Errorf("wordstore.SetMastered %s: %w", ref, err)
	}

	st, err := sqlite.BuildUpsert(tableMastery, sqlite.Fields{
		{Name: "word_id", Value: id},
		{Name: "mastered", Value: mastered},
		{Name: "updated_at", Value: s.now()},
	}, []string{"word_id"}, []string{"mastered", "updated_at"})
	if err != nil {
		return fmt.Errorf("wordstore.SetMastered: %w", err)
	}

	if _, err := s.exec(ctx, "upsert mastery", st); err != nil {
		return fmt.Errorf("wordstore.SetMastered %s: %w", ref, err)
	}
	return nil
}

// IsMastered reports the word's mastery flag; a word never marked is not mastered.
func (s *Store) IsMastered(ctx context.Context, ref domain.WordRef) (bool, error) {
	id, err := s.resolve(ctx, ref)
	if err != nil {
		return false, fmt.Errorf("wordstore.IsMastered %s: %w", ref, err)
	}

	st, err := sqlite.BuildSelect(tableMastery, []string{"mastered"}, sqlite.Filter{"word_id": id})
	if err != nil {
		return false, fmt.Errorf("wordstore.IsMastered: %w", err)
	}

	var mastered bool
	err = sqlite.QueryRow(ctx, s.q(ctx), st).Scan(&mastered)
	if err != nil {
		mapped := sqlite.MapError(err, "select mastery", st)
		if errors.Is(mapped, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("wordstore.IsMastered %s: %w", ref, mapped)
	}
	return mastered, nil
}

// AddContext attaches a context sentence to the word. Adding a sentence the
// word already has is a no-op.
func (s *Store) AddContext(ctx context.Context, ref domain.WordRef, text string) error {
	if text == "" {
		return domain.NewValidationError("context", "required")
	}

	id, err := s.resolve(ctx, ref)
	if err != nil {
		return fmt.Errorf("wordstore.AddContext %s: %w", ref, err)
	}

	st, err := sqlite.BuildInsertIgnore(tableContexts, sqlite.Fields{
		{Name: "word_id", Value: id},
		{Name: "text", Value: text},
		{Name: "created_at", Value: s.now()},
	}, "word_id", "text")
	if err != nil {
		return fmt.Errorf("wordstore.AddContext: %w", err)
	}

	if _, err := s.exec(ctx, "insert context", st); err != nil {
		return fmt.Errorf("wordstore.AddContext %s: %w", ref, err)
	}
	return nil
}

// AddDefinition attaches a definition unless the word already has any.
// The first definitions written for a word are never extended or replaced.
func (s *Store) AddDefinition(ctx context.Context, ref domain.WordRef, category, text string) error {
	var defs domain.Definitions
	defs.Add(category, text)

	if _, err := s.AddDefinitions(ctx, ref, defs); err != nil {
		return fmt.Errorf("wordstore.AddDefinition: %w", err)
	}
	return nil
}

// AddDefinitions writes the whole set in one transaction, but only if the
// word has no definition yet. It returns the number of rows inserted.
func (s *Store) AddDefinitions(ctx context.Context, ref domain.WordRef, defs domain.Definitions) (int, error) {
	if defs.IsUndefined() || defs.Len() == 0 {
		return 0, nil
	}

	inserted := 0
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		id, err := s.resolve(ctx, ref)
		if err != nil {
			return err
		}

		existing, err := s.count(ctx, "count definitions", tableDefinitions, sqlite.Filter{"word_id": id})
		if err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		now := s.now()
		var insertErr error
		defs.Each(func(category, text string) {
			if insertErr != nil {
				return
			}
			st, err := sqlite.BuildInsert(tableDefinitions, sqlite.Fields{
				{Name: "word_id", Value: id},
				{Name: "category", Value: category},
				{Name: "text", Value: text},
				{Name: "created_at", Value: now},
			})
			if err != nil {
				insertErr = err
				return
			}
			if _, err := s.exec(ctx, "insert definition", st); err != nil {
				insertErr = err
				return
			}
			inserted++
		})
		return insertErr
	})
	if err != nil {
		return 0, fmt.Errorf("wordstore.AddDefinitions %s: %w", ref, err)
	}
	return inserted, nil
}

// GetContexts returns the word's context sentences in insertion order.
func (s *Store) GetContexts(ctx context.Context, ref domain.WordRef) ([]string, error) {
	id, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("wordstore.GetContexts %s: %w", ref, err)
	}

	st, err := sqlite.BuildSelect(tableContexts, []string{"text"}, sqlite.Filter{"word_id": id}, "id")
	if err != nil {
		return nil, fmt.Errorf("wordstore.GetContexts: %w", err)
	}
	return s.queryStrings(ctx, "wordstore.GetContexts", st)
}

// GetDefinitions returns the word's definitions grouped by category, with
// categories in first-seen order.
func (s *Store) GetDefinitions(ctx context.Context, ref domain.WordRef) (domain.Definitions, error) {
	id, err := s.resolve(ctx, ref)
	if err != nil {
		return domain.Definitions{}, fmt.Errorf("wordstore.GetDefinitions %s: %w", ref, err)
	}

	st, err := sqlite.BuildSelect(tableDefinitions, []string{"category", "text"}, sqlite.Filter{"word_id": id}, "id")
	if err != nil {
		return domain.Definitions{}, fmt.Errorf("wordstore.GetDefinitions: %w", err)
	}

	rows, err := sqlite.Query(ctx, s.q(ctx), st)
	if err != nil {
		return domain.Definitions{}, sqlite.MapError(err, "wordstore.GetDefinitions", st)
	}
	defer rows.Close()

	var defs domain.Definitions
	for rows.Next() {
		var category, text string
		if err := rows.Scan(&category, &text); err != nil {
			return domain.Definitions{}, sqlite.MapError(err, "wordstore.GetDefinitions", st)
		}
		defs.Add(category, text)
	}
	if err := rows.Err(); err != nil {
		return domain.Definitions{}, sqlite.MapError(err, "wordstore.GetDefinitions", st)
	}
	return defs, nil
}
