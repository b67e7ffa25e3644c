package vocabulary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
)

// Export returns the canonical record of every stored word.
func (s *Service) Export(ctx context.Context) ([]domain.Record, error) {
	records, err := s.words.Dump(ctx)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Export: %w", err)
	}
	return records, nil
}

// Import migrates records into the store. Words and contexts are normalized
// the same way submissions are; records that normalize to an empty word are
// passed through and skipped by the store.
func (s *Service) Import(ctx context.Context, records []domain.Record) (*ImportResult, error) {
	normalized := make([]domain.Record, len(records))
	for i, rec := range records {
		rec.Word = domain.NormalizeText(rec.Word)
		contexts := make([]string, 0, len(rec.Contexts))
		for _, c := range rec.Contexts {
			if c = domain.NormalizeContext(c); c != "" {
				contexts = append(contexts, c)
			}
		}
		rec.Contexts = contexts
		normalized[i] = rec
	}

	n, err := s.words.Migrate(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Import: %w", err)
	}

	s.log.InfoContext(ctx, "records imported", slog.Int("imported", n), slog.Int("total", len(records)))
	return &ImportResult{Imported: n, Total: len(records)}, nil
}
