// Package lookup queues word submissions so dictionary lookups run at a
// bounded pace instead of inside the request.
package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/service/vocabulary"
)

type queueRepo interface {
	Enqueue(ctx context.Context, word, sentence string) (int64, error)
	ClaimBatch(ctx context.Context, limit int) ([]domain.LookupItem, error)
	MarkDone(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
	GetStats(ctx context.Context) (domain.LookupQueueStats, error)
	List(ctx context.Context, status domain.LookupStatus, limit, offset int) ([]domain.LookupItem, error)
	RetryAllFailed(ctx context.Context) (int, error)
	ResetProcessing(ctx context.Context) (int, error)
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service wraps the lookup queue repository with business logic.
type Service struct {
	log   *slog.Logger
	queue queueRepo
	tx    txManager
}

// NewService creates a new lookup service.
func NewService(log *slog.Logger, queue queueRepo, tx txManager) *Service {
	return &Service{
		log:   log.With("service", "lookup"),
		queue: queue,
		tx:    tx,
	}
}

// Enqueue validates a submission and queues one item per context (a single
// item when there is none). All items are queued or none is.
func (s *Service) Enqueue(ctx context.Context, in vocabulary.RecordInput) ([]int64, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	word := domain.NormalizeText(in.Word)

	sentences := make([]string, 0, len(in.Contexts))
	for _, c := range in.Contexts {
		if c = domain.NormalizeContext(c); c != "" {
			sentences = append(sentences, c)
		}
	}
	if len(sentences) == 0 {
		sentences = append(sentences, "")
	}

	ids := make([]int64, 0, len(sentences))
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, sentence := range sentences {
			id, err := s.queue.Enqueue(ctx, word, sentence)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("lookup.Enqueue: %w", err)
	}

	s.log.InfoContext(ctx, "submission queued", slog.String("word", word), slog.Int("items", len(ids)))
	return ids, nil
}

// ClaimBatch claims up to limit pending items for processing.
func (s *Service) ClaimBatch(ctx context.Context, limit int) ([]domain.LookupItem, error) {
	if limit <= 0 {
		limit = 1
	}
	items, err := s.queue.ClaimBatch(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		s.log.InfoContext(ctx, "claimed batch", slog.Int("count", len(items)))
	}
	return items, nil
}

// MarkDone marks an item as successfully processed.
func (s *Service) MarkDone(ctx context.Context, id int64) error {
	return s.queue.MarkDone(ctx, id)
}

// MarkFailed marks an item as failed with error message.
func (s *Service) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	return s.queue.MarkFailed(ctx, id, errMsg)
}

// GetStats returns aggregate counts by status.
func (s *Service) GetStats(ctx context.Context) (domain.LookupQueueStats, error) {
	return s.queue.GetStats(ctx)
}

// List returns queue items filtered by status with pagination.
func (s *Service) List(ctx context.Context, status domain.LookupStatus, limit, offset int) ([]domain.LookupItem, error) {
	if status != "" && !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.queue.List(ctx, status, limit, offset)
}

// RetryAllFailed resets all failed items to pending.
func (s *Service) RetryAllFailed(ctx context.Context) (int, error) {
	n, err := s.queue.RetryAllFailed(ctx)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "retried all failed items", slog.Int("count", n))
	return n, nil
}

// ResetProcessing resets stuck processing items back to pending.
func (s *Service) ResetProcessing(ctx context.Context) (int, error) {
	n, err := s.queue.ResetProcessing(ctx)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "reset processing items", slog.Int("count", n))
	return n, nil
}

// Prune deletes done and failed items last updated more than retention ago.
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int, error) {
	if retention <= 0 {
		return 0, domain.NewValidationError("retention", "must be positive")
	}
	n, err := s.queue.DeleteFinishedBefore(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "pruned finished items", slog.Int("count", n))
	return n, nil
}
