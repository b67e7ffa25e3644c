package sqlite

import (
	"context"
	"database/sql"
)

// Querier is the common interface implemented by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txCtxKey struct{}

func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

func txFromCtx(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(*sql.Tx)
	return tx, ok
}

// QuerierFromCtx returns the transaction from context if present,
// otherwise returns db.
func QuerierFromCtx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := txFromCtx(ctx); ok {
		return tx
	}
	return db
}

// Exec runs a built statement against q.
func Exec(ctx context.Context, q Querier, st Statement) (sql.Result, error) {
	return q.ExecContext(ctx, st.SQL, st.Args...)
}

// Query runs a built statement that returns rows.
func Query(ctx context.Context, q Querier, st Statement) (*sql.Rows, error) {
	return q.QueryContext(ctx, st.SQL, st.Args...)
}

// QueryRow runs a built statement that returns at most one row.
func QueryRow(ctx context.Context, q Querier, st Statement) *sql.Row {
	return q.QueryRowContext(ctx, st.SQL, st.Args...)
}
