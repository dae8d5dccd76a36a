// Package pg opens the pgx pool behind the store
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	AppName  string
	// LogSQL logs every statement, Slow marks statements at or past it, 0 disables marking
	LogSQL bool
	Slow   time.Duration
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg into a pool, no connection is made until first use
func Open(ctx context.Context, cfg Config, log logger.Logger) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "postgres url")
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.LogSQL || cfg.Slow > 0 {
		pcfg.ConnConfig.Tracer = &Tracer{Log: log.With().Str("component", "pg").Logger(), Slow: cfg.Slow, All: cfg.LogSQL}
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, perr.FromPostgres(err, "postgres pool")
	}
	return pool, nil
}
