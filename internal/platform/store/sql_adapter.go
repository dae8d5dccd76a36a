package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is what *pgxpool.Pool and pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier adapts either a pool or a transaction to RowQuerier
type querier struct{ q pgxQuerier }

func (a querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return a.q.Exec(ctx, sql, args...)
}

func (a querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows{rs}, nil
}

func (a querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.q.QueryRow(ctx, sql, args...)
}

// pgAdapter is the pool side, it adds transactions, ping and close
type pgAdapter struct {
	querier
	pool *pgxpool.Pool
}

func newPGAdapter(p *pgxpool.Pool) *pgAdapter { return &pgAdapter{querier: querier{p}, pool: p} }

// Ping round trips to the server
func (a *pgAdapter) Ping(ctx context.Context) error { return a.pool.Ping(ctx) }

// Close releases every pooled connection
func (a *pgAdapter) Close() error {
	a.pool.Close()
	return nil
}

// Tx runs fn in a transaction, any error from fn rolls back
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, a.pool, func(tx pgx.Tx) error {
		return fn(querier{tx})
	})
}

// rows narrows pgx.Rows to the store surface
type rows struct{ pgx.Rows }

func (r rows) Columns() []string {
	fd := r.FieldDescriptions()
	out := make([]string, len(fd))
	for i, f := range fd {
		out[i] = f.Name
	}
	return out
}
