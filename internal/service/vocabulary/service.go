// Package vocabulary turns word submissions into stored records and serves
// the read/update operations of the word list.
package vocabulary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/provider"
)

// ErrWordNotFound indicates the dictionary has no entry for the submitted word.
var ErrWordNotFound = fmt.Errorf("word not found in dictionary: %w", domain.ErrNotFound)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordStore interface {
	ResolveWordID(ctx context.Context, text string) (int64, error)
	IsMastered(ctx context.Context, ref domain.WordRef) (bool, error)
	SetMastered(ctx context.Context, ref domain.WordRef, mastered bool) error
	AddContext(ctx context.Context, ref domain.WordRef, text string) error
	DeleteWord(ctx context.Context, text string) error
	ListWords(ctx context.Context) ([]string, error)
	GetRecord(ctx context.Context, text string) (*domain.Record, error)
	Migrate(ctx context.Context, records []domain.Record) (int, error)
	Dump(ctx context.Context) ([]domain.Record, error)
	Stats(ctx context.Context) (domain.StoreStats, error)
}

type dictionary interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the vocabulary business logic.
type Service struct {
	log   *slog.Logger
	words wordStore
	dict  dictionary
	tx    txManager
}

// NewService creates a new vocabulary service.
func NewService(logger *slog.Logger, words wordStore, dict dictionary, tx txManager) *Service {
	return &Service{
		log:   logger.With("service", "vocabulary"),
		words: words,
		dict:  dict,
		tx:    tx,
	}
}
