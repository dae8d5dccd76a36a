package store

import (
	"context"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
)

// ExecOne runs a write and asserts exactly one row was affected
// an upsert counts as one row on both the insert and the update path
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		return perr.Newf(perr.ErrorCodeDB, "expected exactly one row affected, got %d", n)
	}
	return nil
}

// Scalar queries the first column of the first row into T
// a missing row surfaces the driver error, pgx.ErrNoRows for postgres
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
