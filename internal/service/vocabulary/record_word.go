package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

// RecordWord stores a submitted word. A word that is already stored only
// gains the new contexts; its mastery row is touched with its current value.
// A new word is looked up in the dictionary first: an unknown word yields
// ErrWordNotFound and nothing is stored.
func (s *Service) RecordWord(ctx context.Context, in RecordInput) (*RecordResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.normalized()

	existing, err := s.addToExisting(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.RecordWord: %w", err)
	}
	if existing {
		s.log.InfoContext(ctx, "context added", slog.String("word", in.Word), slog.Int("contexts", len(in.Contexts)))
		return &RecordResult{Word: in.Word}, nil
	}

	res, err := s.dict.FetchEntry(ctx, in.Word)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.RecordWord: lookup %q: %w", in.Word, err)
	}
	if res == nil {
		return nil, ErrWordNotFound
	}

	rec := NormalizeRecord(in.Word, in.Contexts, res)
	n, err := s.words.Migrate(ctx, []domain.Record{rec})
	if err != nil {
		return nil, fmt.Errorf("vocabulary.RecordWord: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("vocabulary.RecordWord: record %q was not stored: %w", rec.Word, domain.ErrStorage)
	}

	s.log.InfoContext(ctx, "word recorded",
		slog.String("word", rec.Word),
		slog.Int("definitions", rec.Definitions.Len()),
	)
	return &RecordResult{Word: rec.Word, Created: true, Definitions: rec.Definitions.Len()}, nil
}

func (s *Service) addToExisting(ctx context.Context, in RecordInput) (bool, error) {
	found := false
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		id, err := s.words.ResolveWordID(ctx, in.Word)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		ref := domain.ByID(id)

		mastered, err := s.words.IsMastered(ctx, ref)
		if err != nil {
			return err
		}
		if err := s.words.SetMastered(ctx, ref, mastered); err != nil {
			return err
		}
		for _, c := range in.Contexts {
			if err := s.words.AddContext(ctx, ref, c); err != nil {
				return err
			}
		}
		return nil
	})
	return found, err
}
