// Package lookupqueue implements the dictionary lookup queue repository using SQLite.
package lookupqueue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/wordcard-backend/internal/domain"
	"github.com/heartmarshall/wordcard-backend/pkg/clock"
)

const table = "lookup_queue"

var itemColumns = []string{"id", "word", "context", "status", "attempts", "error_message", "created_at", "updated_at"}

// Repo provides lookup queue persistence backed by SQLite.
type Repo struct {
	db  *sql.DB
	tx  *sqlite.TxManager
	now clock.Func
}

// New creates a new lookup queue repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db, tx: sqlite.NewTxManager(db), now: clock.Unix}
}

// WithClock returns a copy of the repo that stamps rows with now.
func (r *Repo) WithClock(now clock.Func) *Repo {
	cp := *r
	cp.now = now
	return &cp
}

func (r *Repo) q(ctx context.Context) sqlite.Querier {
	return sqlite.QuerierFromCtx(ctx, r.db)
}

func toStatement(b sq.Sqlizer) (sqlite.Statement, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return sqlite.Statement{}, err
	}
	return sqlite.Statement{SQL: query, Args: args}, nil
}

// Enqueue adds a submission to the queue and returns its id.
func (r *Repo) Enqueue(ctx context.Context, word, sentence string) (int64, error) {
	now := r.now()
	st, err := sqlite.BuildInsert(table, sqlite.Fields{
		{Name: "word", Value: word},
		{Name: "context", Value: sentence},
		{Name: "status", Value: string(domain.LookupStatusPending)},
		{Name: "created_at", Value: now},
		{Name: "updated_at", Value: now},
	})
	if err != nil {
		return 0, fmt.Errorf("lookupqueue.Enqueue: %w", err)
	}

	res, err := sqlite.Exec(ctx, r.q(ctx), st)
	if err != nil {
		return 0, sqlite.MapError(err, "lookupqueue.Enqueue", st)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("lookupqueue.Enqueue: last insert id: %w", err)
	}
	return id, nil
}

// ClaimBatch moves up to limit pending items to processing, oldest first,
// and returns them.
func (r *Repo) ClaimBatch(ctx context.Context, limit int) ([]domain.LookupItem, error) {
	var items []domain.LookupItem
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		pick, err := toStatement(sq.Select("id").From(table).
			Where(sq.Eq{"status": string(domain.LookupStatusPending)}).
			OrderBy("id").
			Limit(uint64(limit)))
		if err != nil {
			return err
		}
		ids, err := r.queryIDs(ctx, pick)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		claim, err := toStatement(sq.Update(table).
			Set("status", string(domain.LookupStatusProcessing)).
			Set("attempts", sq.Expr("attempts + 1")).
			Set("updated_at", r.now()).
			Where(sq.Eq{"id": ids}))
		if err != nil {
			return err
		}
		if _, err := sqlite.Exec(ctx, r.q(ctx), claim); err != nil {
			return sqlite.MapError(err, "claim", claim)
		}

		sel, err := toStatement(sq.Select(itemColumns...).From(table).Where(sq.Eq{"id": ids}).OrderBy("id"))
		if err != nil {
			return err
		}
		items, err = r.queryItems(ctx, sel)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("lookupqueue.ClaimBatch: %w", err)
	}
	if items == nil {
		items = []domain.LookupItem{}
	}
	return items, nil
}

// MarkDone marks an item as successfully looked up.
func (r *Repo) MarkDone(ctx context.Context, id int64) error {
	return r.setStatus(ctx, "lookupqueue.MarkDone", id, domain.LookupStatusDone, nil)
}

// MarkFailed marks an item as failed with error message.
func (r *Repo) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	return r.setStatus(ctx, "lookupqueue.MarkFailed", id, domain.LookupStatusFailed, &errMsg)
}

func (r *Repo) setStatus(ctx context.Context, op string, id int64, status domain.LookupStatus, errMsg *string) error {
	st, err := sqlite.BuildUpdate(table, sqlite.Fields{
		{Name: "status", Value: string(status)},
		{Name: "error_message", Value: errMsg},
		{Name: "updated_at", Value: r.now()},
	}, sqlite.Filter{"id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := sqlite.Exec(ctx, r.q(ctx), st)
	if err != nil {
		return sqlite.MapError(err, op, st)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s %d: %w", op, id, domain.ErrNotFound)
	}
	return nil
}

// GetStats returns aggregate counts by status.
func (r *Repo) GetStats(ctx context.Context) (domain.LookupQueueStats, error) {
	st, err := toStatement(sq.Select("status", "COUNT(*)").From(table).GroupBy("status"))
	if err != nil {
		return domain.LookupQueueStats{}, fmt.Errorf("lookupqueue.GetStats: %w", err)
	}

	rows, err := sqlite.Query(ctx, r.q(ctx), st)
	if err != nil {
		return domain.LookupQueueStats{}, sqlite.MapError(err, "lookupqueue.GetStats", st)
	}
	defer rows.Close()

	var stats domain.LookupQueueStats
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return domain.LookupQueueStats{}, sqlite.MapError(err, "lookupqueue.GetStats", st)
		}
		switch domain.LookupStatus(status) {
		case domain.LookupStatusPending:
			stats.Pending = n
		case domain.LookupStatusProcessing:
			stats.Processing = n
		case domain.LookupStatusDone:
			stats.Done = n
		case domain.LookupStatusFailed:
			stats.Failed = n
		}
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return domain.LookupQueueStats{}, sqlite.MapError(err, "lookupqueue.GetStats", st)
	}
	return stats, nil
}

// List returns queue items filtered by status (all when empty) with pagination.
func (r *Repo) List(ctx context.Context, status domain.LookupStatus, limit, offset int) ([]domain.LookupItem, error) {
	b := sq.Select(itemColumns...).From(table).OrderBy("id").Limit(uint64(limit)).Offset(uint64(offset))
	if status != "" {
		b = b.Where(sq.Eq{"status": string(status)})
	}
	st, err := toStatement(b)
	if err != nil {
		return nil, fmt.Errorf("lookupqueue.List: %w", err)
	}
	items, err := r.queryItems(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("lookupqueue.List: %w", err)
	}
	return items, nil
}

// ResetProcessing resets all processing items back to pending (stuck items).
func (r *Repo) ResetProcessing(ctx context.Context) (int, error) {
	return r.moveAll(ctx, "lookupqueue.ResetProcessing", domain.LookupStatusProcessing, domain.LookupStatusPending)
}

// RetryAllFailed resets all failed items to pending.
func (r *Repo) RetryAllFailed(ctx context.Context) (int, error) {
	return r.moveAll(ctx, "lookupqueue.RetryAllFailed", domain.LookupStatusFailed, domain.LookupStatusPending)
}

func (r *Repo) moveAll(ctx context.Context, op string, from, to domain.LookupStatus) (int, error) {
	st, err := sqlite.BuildUpdate(table, sqlite.Fields{
		{Name: "status", Value: string(to)},
		{Name: "updated_at", Value: r.now()},
	}, sqlite.Filter{"status": string(from)})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	res, err := sqlite.Exec(ctx, r.q(ctx), st)
	if err != nil {
		return 0, sqlite.MapError(err, op, st)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", op, err)
	}
	return int(n), nil
}

// DeleteFinishedBefore removes done and failed items last updated before cutoff.
func (r *Repo) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	st, err := toStatement(sq.Delete(table).Where(sq.And{
		sq.Eq{"status": []string{string(domain.LookupStatusDone), string(domain.LookupStatusFailed)}},
		sq.Lt{"updated_at": cutoff.Unix()},
	}))
	if err != nil {
		return 0, fmt.Errorf("lookupqueue.DeleteFinishedBefore: %w", err)
	}
	res, err := sqlite.Exec(ctx, r.q(ctx), st)
	if err != nil {
		return 0, sqlite.MapError(err, "lookupqueue.DeleteFinishedBefore", st)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("lookupqueue.DeleteFinishedBefore: rows affected: %w", err)
	}
	return int(n), nil
}

func (r *Repo) queryIDs(ctx context.Context, st sqlite.Statement) ([]int64, error) {
	rows, err := sqlite.Query(ctx, r.q(ctx), st)
	if err != nil {
		return nil, sqlite.MapError(err, "select ids", st)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, sqlite.MapError(err, "select ids", st)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repo) queryItems(ctx context.Context, st sqlite.Statement) ([]domain.LookupItem, error) {
	rows, err := sqlite.Query(ctx, r.q(ctx), st)
	if err != nil {
		return nil, sqlite.MapError(err, "select items", st)
	}
	defer rows.Close()

	items := []domain.LookupItem{}
	for rows.Next() {
		var (
			item                 domain.LookupItem
			status               string
			errMsg               sql.NullString
			createdAt, updatedAt int64
		)
		if err := rows.Scan(&item.ID, &item.Word, &item.Context, &status, &item.Attempts, &errMsg, &createdAt, &updatedAt); err != nil {
			return nil, sqlite.MapError(err, "select items", st)
		}
		item.Status = domain.LookupStatus(status)
		if errMsg.Valid {
			item.ErrorMessage = &errMsg.String
		}
		item.CreatedAt = clock.ToTime(createdAt)
		item.UpdatedAt = clock.ToTime(updatedAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err, "select items", st)
	}
	return items, nil
}
