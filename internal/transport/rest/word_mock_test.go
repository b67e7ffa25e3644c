package rest

import (
	"context"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/service/vocabulary"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type vocabularyMock struct {
	RecordWordFunc   func(ctx context.Context, in vocabulary.RecordInput) (*vocabulary.RecordResult, error)
	ListWordsFunc    func(ctx context.Context) ([]string, error)
	GetRecordFunc    func(ctx context.Context, word string) (*domain.Record, error)
	MarkMasteredFunc func(ctx context.Context, word string, mastered bool) error
	DeleteWordFunc   func(ctx context.Context, word string) error
	ExportFunc       func(ctx context.Context) ([]domain.Record, error)
	ImportFunc       func(ctx context.Context, records []domain.Record) (*vocabulary.ImportResult, error)
}

func (m *vocabularyMock) RecordWord(ctx context.Context, in vocabulary.RecordInput) (*vocabulary.RecordResult, error) {
	return m.RecordWordFunc(ctx, in)
}

func (m *vocabularyMock) ListWords(ctx context.Context) ([]string, error) {
	return m.ListWordsFunc(ctx)
}

func (m *vocabularyMock) GetRecord(ctx context.Context, word string) (*domain.Record, error) {
	return m.GetRecordFunc(ctx, word)
}

func (m *vocabularyMock) MarkMastered(ctx context.Context, word string, mastered bool) error {
	return m.MarkMasteredFunc(ctx, word, mastered)
}

func (m *vocabularyMock) DeleteWord(ctx context.Context, word string) error {
	return m.DeleteWordFunc(ctx, word)
}

func (m *vocabularyMock) Export(ctx context.Context) ([]domain.Record, error) {
	return m.ExportFunc(ctx)
}

func (m *vocabularyMock) Import(ctx context.Context, records []domain.Record) (*vocabulary.ImportResult, error) {
	return m.ImportFunc(ctx, records)
}

type lookupQueueMock struct {
	EnqueueFunc func(ctx context.Context, in vocabulary.RecordInput) ([]int64, error)
}

func (m *lookupQueueMock) Enqueue(ctx context.Context, in vocabulary.RecordInput) ([]int64, error) {
	return m.EnqueueFunc(ctx, in)
}
