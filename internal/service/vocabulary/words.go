package vocabulary

import (
	"context"
	"fmt"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

// ListWords returns every stored word.
func (s *Service) ListWords(ctx context.Context) ([]string, error) {
	words, err := s.words.ListWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.ListWords: %w", err)
	}
	return words, nil
}

// GetRecord returns the stored record of word.
func (s *Service) GetRecord(ctx context.Context, word string) (*domain.Record, error) {
	w, err := validateWord(word)
	if err != nil {
		return nil, err
	}
	rec, err := s.words.GetRecord(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.GetRecord: %w", err)
	}
	return rec, nil
}

// MarkMastered sets the mastery flag of a stored word.
func (s *Service) MarkMastered(ctx context.Context, word string, mastered bool) error {
	w, err := validateWord(word)
	if err != nil {
		return err
	}
	if err := s.words.SetMastered(ctx, domain.ByText(w), mastered); err != nil {
		return fmt.Errorf("vocabulary.MarkMastered: %w", err)
	}
	return nil
}

// DeleteWord removes a word with its contexts, definitions and mastery.
func (s *Service) DeleteWord(ctx context.Context, word string) error {
	w, err := validateWord(word)
	if err != nil {
		return err
	}
	if err := s.words.DeleteWord(ctx, w); err != nil {
		return fmt.Errorf("vocabulary.DeleteWord: %w", err)
	}
	return nil
}

// Stats returns row counts of the store.
func (s *Service) Stats(ctx context.Context) (domain.StoreStats, error) {
	st, err := s.words.Stats(ctx)
	if err != nil {
		return domain.StoreStats{}, fmt.Errorf("vocabulary.Stats: %w", err)
	}
	return st, nil
}
