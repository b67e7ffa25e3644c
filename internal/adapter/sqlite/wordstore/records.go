package wordstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

// GetRecord assembles the canonical record for a stored word.
func (s *Store) GetRecord(ctx context.Context, text string) (*domain.Record, error) {
	id, err := s.ResolveWordID(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("wordstore.GetRecord: %w", err)
	}
	ref := domain.ByID(id)

	mastered, err := s.IsMastered(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("wordstore.GetRecord %q: %w", text, err)
	}
	contexts, err := s.GetContexts(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("wordstore.GetRecord %q: %w", text, err)
	}
	defs, err := s.GetDefinitions(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("wordstore.GetRecord %q: %w", text, err)
	}

	return &domain.Record{
		Word:        text,
		Mastered:    mastered,
		Contexts:    contexts,
		Definitions: defs,
	}, nil
}

// Migrate reconciles records into the store and returns how many were
// upserted. Each record is applied in its own transaction: a failing record
// is logged and skipped without affecting the others. Records without a word
// are skipped, as are the definitions of records marked undefined.
func (s *Store) Migrate(ctx context.Context, records []domain.Record) (int, error) {
	upserted := 0
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return upserted, fmt.Errorf("wordstore.Migrate: %w", err)
		}
		if rec.Word == "" {
			s.log.WarnContext(ctx, "skipping record without word", slog.Int("index", i))
			continue
		}

		if err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			return s.applyRecord(ctx, rec)
		}); err != nil {
			s.log.ErrorContext(ctx, "migrate record failed",
				slog.String("word", rec.Word),
				slog.String("error", err.Error()),
			)
			continue
		}
		upserted++
	}
	return upserted, nil
}

func (s *Store) applyRecord(ctx context.Context, rec domain.Record) error {
	id, err := s.UpsertWord(ctx, rec.Word, rec.Mastered)
	if err != nil {
		return err
	}
	ref := domain.ByID(id)

	for _, c := range rec.Contexts {
		if c == "" {
			continue
		}
		if err := s.AddContext(ctx, ref, c); err != nil {
			return err
		}
	}

	if rec.Definitions.IsUndefined() {
		return nil
	}
	_, err = s.AddDefinitions(ctx, ref, rec.Definitions)
	return err
}

// Dump returns the canonical record of every stored word.
func (s *Store) Dump(ctx context.Context) ([]domain.Record, error) {
	words, err := s.ListWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("wordstore.Dump: %w", err)
	}

	records := make([]domain.Record, 0, len(words))
	for _, w := range words {
		rec, err := s.GetRecord(ctx, w)
		if errors.Is(err, domain.ErrNotFound) {
			// deleted between listing and reading
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("wordstore.Dump: %w", err)
		}
		records = append(records, *rec)
	}
	return records, nil
}
