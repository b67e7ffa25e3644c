package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/service/vocabulary"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockQueueRepo struct {
	EnqueueFunc              func(ctx context.Context, word, sentence string) (int64, error)
	ClaimBatchFunc           func(ctx context.Context, limit int) ([]domain.LookupItem, error)
	MarkDoneFunc             func(ctx context.Context, id int64) error
	MarkFailedFunc           func(ctx context.Context, id int64, errMsg string) error
	GetStatsFunc             func(ctx context.Context) (domain.LookupQueueStats, error)
	ListFunc                 func(ctx context.Context, status domain.LookupStatus, limit, offset int) ([]domain.LookupItem, error)
	RetryAllFailedFunc       func(ctx context.Context) (int, error)
	ResetProcessingFunc      func(ctx context.Context) (int, error)
	DeleteFinishedBeforeFunc func(ctx context.Context, cutoff time.Time) (int, error)

	mu     sync.Mutex
	done   []int64
	failed map[int64]string
}

func (m *mockQueueRepo) Enqueue(ctx context.Context, word, sentence string) (int64, error) {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, word, sentence)
	}
	return 1, nil
}

func (m *mockQueueRepo) ClaimBatch(ctx context.Context, limit int) ([]domain.LookupItem, error) {
	if m.ClaimBatchFunc != nil {
		return m.ClaimBatchFunc(ctx, limit)
	}
	return []domain.LookupItem{}, nil
}

func (m *mockQueueRepo) MarkDone(ctx context.Context, id int64) error {
	m.mu.Lock()
	m.done = append(m.done, id)
	m.mu.Unlock()
	if m.MarkDoneFunc != nil {
		return m.MarkDoneFunc(ctx, id)
	}
	return nil
}

func (m *mockQueueRepo) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	m.mu.Lock()
	if m.failed == nil {
		m.failed = map[int64]string{}
	}
	m.failed[id] = errMsg
	m.mu.Unlock()
	if m.MarkFailedFunc != nil {
		return m.MarkFailedFunc(ctx, id, errMsg)
	}
	return nil
}

func (m *mockQueueRepo) GetStats(ctx context.Context) (domain.LookupQueueStats, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx)
	}
	return domain.LookupQueueStats{}, nil
}

func (m *mockQueueRepo) List(ctx context.Context, status domain.LookupStatus, limit, offset int) ([]domain.LookupItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status, limit, offset)
	}
	return []domain.LookupItem{}, nil
}

func (m *mockQueueRepo) RetryAllFailed(ctx context.Context) (int, error) {
	if m.RetryAllFailedFunc != nil {
		return m.RetryAllFailedFunc(ctx)
	}
	return 0, nil
}

func (m *mockQueueRepo) ResetProcessing(ctx context.Context) (int, error) {
	if m.ResetProcessingFunc != nil {
		return m.ResetProcessingFunc(ctx)
	}
	return 0, nil
}

func (m *mockQueueRepo) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if m.DeleteFinishedBeforeFunc != nil {
		return m.DeleteFinishedBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

type mockRecorder struct {
	RecordWordFunc func(ctx context.Context, in vocabulary.RecordInput) (*vocabulary.RecordResult, error)

	mu    sync.Mutex
	calls []vocabulary.RecordInput
}

func (m *mockRecorder) RecordWord(ctx context.Context, in vocabulary.RecordInput) (*vocabulary.RecordResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, in)
	m.mu.Unlock()
	if m.RecordWordFunc != nil {
		return m.RecordWordFunc(ctx, in)
	}
	return &vocabulary.RecordResult{Word: in.Word, Created: true}, nil
}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}
