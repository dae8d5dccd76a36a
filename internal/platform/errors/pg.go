package errors

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the cache table can actually hit
const (
	pgUniqueViolation     = "23505"
	pgInvalidText         = "22P02"
	pgSerialization       = "40001"
	pgDeadlock            = "40P01"
	pgQueryCanceled       = "57014"
	pgAdminShutdown       = "57P01"
	pgCannotConnectNow    = "57P03"
	pgTooManyConnections  = "53300"
	pgReadOnlyTransaction = "25006"
)

// ExtractPgError returns the PgError at the root of err
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether err carries the given SQLSTATE
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// DBErrorCode maps a Postgres error onto a code, ok is false for non pg errors
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case pgInvalidText:
		return ErrorCodeInvalidArgument, true
	case pgQueryCanceled:
		return ErrorCodeTimeout, true
	case pgSerialization, pgDeadlock, pgAdminShutdown, pgCannotConnectNow,
		pgTooManyConnections, pgReadOnlyTransaction:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a driver error with a mapped code, nil stays nil
// context failures keep their Timeout or Unavailable meaning
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(err, context.Canceled) {
		return FromContext(err, "%s", msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// IsRetryable reports whether a database error is transient contention or a restart
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	code, ok := DBErrorCode(err)
	return ok && code == ErrorCodeUnavailable
}
