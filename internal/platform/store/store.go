// Package store opens the optional cache backends and exposes the sql seam repos use
package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
	"github.com/Vagvedi/gitrekt/internal/platform/store/pg"
	"github.com/Vagvedi/gitrekt/internal/platform/store/rds"
)

// Store holds the backends Open connected, the zero value has none
type Store struct {
	Log logger.Logger

	// PG is nil unless postgres is enabled
	PG TxRunner
	// Redis is nil unless redis is enabled
	Redis *redis.Client
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also open transactions
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects the enabled backends and pings each until healthy
// a failure closes whatever was already opened
func Open(ctx context.Context, cfg Config, log logger.Logger) (*Store, error) {
	if cfg.PingAttempts <= 0 {
		cfg.PingAttempts = 10
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 3 * time.Second
	}
	s := &Store{Log: log}

	if cfg.PG.Enabled {
		pool, err := pg.Open(ctx, pg.Config{
			URL:      cfg.PG.URL,
			MaxConns: cfg.PG.MaxConns,
			AppName:  cfg.AppName,
			LogSQL:   cfg.PG.LogSQL,
			Slow:     time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
		}, log)
		if err != nil {
			return nil, err
		}
		a := newPGAdapter(pool)
		if err := pingWithBackoff(ctx, "postgres", a.Ping, cfg); err != nil {
			_ = a.Close()
			return nil, err
		}
		s.PG = a
	}

	if cfg.RDS.Enabled {
		rc, err := rds.New(rds.Config{URL: cfg.RDS.URL, Addr: cfg.RDS.Addr, DB: cfg.RDS.DB})
		if err == nil {
			err = pingWithBackoff(ctx, "redis", rds.Pinger{C: rc}.Ping, cfg)
			if err != nil {
				_ = rc.Close()
			}
		}
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Redis = rc
	}

	return s, nil
}

var sleep = time.Sleep

func pingWithBackoff(ctx context.Context, name string, ping func(context.Context) error, cfg Config) error {
	var last error
	backoff := 150 * time.Millisecond
	for range cfg.PingAttempts {
		pctx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if ctx.Err() != nil {
			return perr.FromContext(ctx.Err(), "%s ping aborted", name)
		}
		sleep(backoff)
		backoff = min(backoff*2, 2*time.Second)
	}
	return perr.Wrapf(last, perr.ErrorCodeUnavailable, "%s ping failed after %d attempts", name, cfg.PingAttempts)
}

// Guard pings every backend the store holds
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return perr.New(perr.ErrorCodeUnavailable, "nil store")
	}
	var errs []error
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, perr.Wrap(err, perr.ErrorCodeUnavailable, "postgres"))
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			errs = append(errs, perr.Wrap(err, perr.ErrorCodeUnavailable, "redis"))
		}
	}
	return errors.Join(errs...)
}

// Close closes every backend, nil ones are skipped
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
