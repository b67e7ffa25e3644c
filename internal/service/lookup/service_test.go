package lookup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/service/vocabulary"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

func TestEnqueue_OneItemPerContext(t *testing.T) {
	t.Parallel()

	type row struct{ word, sentence string }
	var rows []row
	repo := &mockQueueRepo{EnqueueFunc: func(ctx context.Context, word, sentence string) (int64, error) {
		rows = append(rows, row{word, sentence})
		return int64(len(rows)), nil
	}}
	tx := &mockTxManager{}
	svc := NewService(discardLogger(), repo, tx)

	ids, err := svc.Enqueue(context.Background(), vocabulary.RecordInput{Word: " Hello ", Contexts: []string{"first  one", " ", "second"}})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, ids)
	assert.Equal(t, []row{{"hello", "first one"}, {"hello", "second"}}, rows)
	assert.Equal(t, 1, tx.calls)
}

func TestEnqueue_NoContext(t *testing.T) {
	t.Parallel()

	var got []string
	repo := &mockQueueRepo{EnqueueFunc: func(ctx context.Context, word, sentence string) (int64, error) {
		got = append(got, sentence)
		return 9, nil
	}}
	svc := NewService(discardLogger(), repo, &mockTxManager{})

	ids, err := svc.Enqueue(context.Background(), vocabulary.RecordInput{Word: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, ids)
	assert.Equal(t, []string{""}, got)
}

func TestEnqueue_Validation(t *testing.T) {
	t.Parallel()

	repo := &mockQueueRepo{EnqueueFunc: func(ctx context.Context, word, sentence string) (int64, error) {
		t.Fatal("Enqueue should not be called")
		return 0, nil
	}}
	svc := NewService(discardLogger(), repo, &mockTxManager{})

	_, err := svc.Enqueue(context.Background(), vocabulary.RecordInput{Word: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEnqueue_RepoError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	repo := &mockQueueRepo{EnqueueFunc: func(ctx context.Context, word, sentence string) (int64, error) {
		return 0, boom
	}}
	svc := NewService(discardLogger(), repo, &mockTxManager{})

	_, err := svc.Enqueue(context.Background(), vocabulary.RecordInput{Word: "hello"})
	assert.ErrorIs(t, err, boom)
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := NewService(discardLogger(), &mockQueueRepo{}, &mockTxManager{})

	_, err := svc.List(context.Background(), "stuck", 10, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestList_DefaultLimit(t *testing.T) {
	t.Parallel()

	var gotLimit int
	repo := &mockQueueRepo{ListFunc: func(ctx context.Context, status domain.LookupStatus, limit, offset int) ([]domain.LookupItem, error) {
		gotLimit = limit
		return []domain.LookupItem{}, nil
	}}
	svc := NewService(discardLogger(), repo, &mockTxManager{})

	_, err := svc.List(context.Background(), domain.LookupStatusFailed, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
}

func TestPrune(t *testing.T) {
	t.Parallel()

	var cutoff time.Time
	repo := &mockQueueRepo{DeleteFinishedBeforeFunc: func(ctx context.Context, c time.Time) (int, error) {
		cutoff = c
		return 3, nil
	}}
	svc := NewService(discardLogger(), repo, &mockTxManager{})

	n, err := svc.Prune(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.WithinDuration(t, time.Now().Add(-time.Hour), cutoff, 5*time.Second)

	_, err = svc.Prune(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Worker
// ---------------------------------------------------------------------------

func TestWorker_ProcessOnce(t *testing.T) {
	t.Parallel()

	repo := &mockQueueRepo{ClaimBatchFunc: func(ctx context.Context, limit int) ([]domain.LookupItem, error) {
		assert.Equal(t, 3, limit)
		return []domain.LookupItem{
			{ID: 1, Word: "hello", Context: "Hello there"},
			{ID: 2, Word: "asdfgh"},
			{ID: 3, Word: "world"},
		}, nil
	}}
	rec := &mockRecorder{RecordWordFunc: func(ctx context.Context, in vocabulary.RecordInput) (*vocabulary.RecordResult, error) {
		if in.Word == "asdfgh" {
			return nil, vocabulary.ErrWordNotFound
		}
		return &vocabulary.RecordResult{Word: in.Word, Created: true}, nil
	}}
	w := NewWorker(discardLogger(), repo, rec, time.Minute, 3)

	n, err := w.ProcessOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, []int64{1, 3}, repo.done)
	require.Contains(t, repo.failed, int64(2))
	assert.Contains(t, repo.failed[2], "not found")
	require.Len(t, rec.calls, 3)
	assert.Equal(t, []string{"Hello there"}, rec.calls[0].Contexts)
	assert.Nil(t, rec.calls[1].Contexts)
}

func TestWorker_ProcessOnce_ClaimError(t *testing.T) {
	t.Parallel()

	boom := errors.New("database is locked")
	repo := &mockQueueRepo{ClaimBatchFunc: func(ctx context.Context, limit int) ([]domain.LookupItem, error) {
		return nil, boom
	}}
	w := NewWorker(discardLogger(), repo, &mockRecorder{}, time.Minute, 1)

	_, err := w.ProcessOnce(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestWorker_ProcessOnce_CanceledLeavesItemClaimed(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	repo := &mockQueueRepo{ClaimBatchFunc: func(ctx context.Context, limit int) ([]domain.LookupItem, error) {
		return []domain.LookupItem{{ID: 1, Word: "hello"}, {ID: 2, Word: "world"}}, nil
	}}
	rec := &mockRecorder{RecordWordFunc: func(ctx context.Context, in vocabulary.RecordInput) (*vocabulary.RecordResult, error) {
		cancel()
		return nil, ctx.Err()
	}}
	w := NewWorker(discardLogger(), repo, rec, time.Minute, 2)

	_, err := w.ProcessOnce(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.done)
	assert.Empty(t, repo.failed)
	assert.Len(t, rec.calls, 1)
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	claimed := make(chan struct{}, 1)
	resets := 0
	repo := &mockQueueRepo{
		ResetProcessingFunc: func(ctx context.Context) (int, error) {
			resets++
			return 1, nil
		},
		ClaimBatchFunc: func(ctx context.Context, limit int) ([]domain.LookupItem, error) {
			select {
			case claimed <- struct{}{}:
			default:
			}
			return []domain.LookupItem{}, nil
		},
	}
	w := NewWorker(discardLogger(), repo, &mockRecorder{}, 10*time.Millisecond, 1)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	select {
	case <-claimed:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never claimed a batch")
	}
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, 1, resets)
}
