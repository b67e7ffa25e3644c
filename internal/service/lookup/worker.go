package lookup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/internal/service/vocabulary"
)

type recorder interface {
	RecordWord(ctx context.Context, in vocabulary.RecordInput) (*vocabulary.RecordResult, error)
}

type claimer interface {
	ClaimBatch(ctx context.Context, limit int) ([]domain.LookupItem, error)
	MarkDone(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
	ResetProcessing(ctx context.Context) (int, error)
}

// Worker drains the lookup queue: every interval it claims a batch and
// records each item through the vocabulary service.
type Worker struct {
	log       *slog.Logger
	queue     claimer
	recorder  recorder
	interval  time.Duration
	batchSize int
}

// NewWorker creates a Worker. Non-positive settings fall back to one item
// per minute.
func NewWorker(log *slog.Logger, queue claimer, rec recorder, interval time.Duration, batchSize int) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Worker{
		log:       log.With("service", "lookup_worker"),
		queue:     queue,
		recorder:  rec,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run processes the queue until ctx is canceled. Items left in processing
// by a previous run are put back first.
func (w *Worker) Run(ctx context.Context) error {
	w.log.InfoContext(ctx, "lookup worker starting",
		slog.Duration("interval", w.interval),
		slog.Int("batch", w.batchSize),
	)

	if n, err := w.queue.ResetProcessing(ctx); err != nil {
		w.log.ErrorContext(ctx, "reset processing failed", slog.String("error", err.Error()))
	} else if n > 0 {
		w.log.WarnContext(ctx, "requeued interrupted items", slog.Int("count", n))
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("lookup worker stopping")
			return nil
		case <-ticker.C:
			if _, err := w.ProcessOnce(ctx); err != nil && ctx.Err() == nil {
				w.log.ErrorContext(ctx, "process batch failed", slog.String("error", err.Error()))
			}
		}
	}
}

// ProcessOnce claims one batch and records every item in it. It returns the
// number of items recorded successfully.
func (w *Worker) ProcessOnce(ctx context.Context) (int, error) {
	items, err := w.queue.ClaimBatch(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, item := range items {
		in := vocabulary.RecordInput{Word: item.Word}
		if item.Context != "" {
			in.Contexts = []string{item.Context}
		}

		if _, err := w.recorder.RecordWord(ctx, in); err != nil {
			if ctx.Err() != nil {
				// leave it in processing; ResetProcessing picks it up on restart
				return done, ctx.Err()
			}
			w.log.WarnContext(ctx, "lookup failed",
				slog.Int64("id", item.ID),
				slog.String("word", item.Word),
				slog.Bool("not_found", errors.Is(err, vocabulary.ErrWordNotFound)),
				slog.String("error", err.Error()),
			)
			if markErr := w.queue.MarkFailed(ctx, item.ID, err.Error()); markErr != nil {
				w.log.ErrorContext(ctx, "mark failed", slog.Int64("id", item.ID), slog.String("error", markErr.Error()))
			}
			continue
		}

		if err := w.queue.MarkDone(ctx, item.ID); err != nil {
			w.log.ErrorContext(ctx, "mark done", slog.Int64("id", item.ID), slog.String("error", err.Error()))
			continue
		}
		done++
	}
	return done, nil
}
