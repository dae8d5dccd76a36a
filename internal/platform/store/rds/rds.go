// Package rds builds the go-redis client for the store
package rds

import (
	"context"

	"github.com/redis/go-redis/v9"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
)

// Config configures a single redis connection, URL wins over Addr and DB
type Config struct {
	URL  string
	Addr string
	DB   int
}

// Options resolves Config into go-redis options
func Options(cfg Config) (*redis.Options, error) {
	if cfg.URL != "" {
		o, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "redis url")
		}
		return o, nil
	}
	if cfg.Addr == "" {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "redis url or addr required")
	}
	return &redis.Options{Addr: cfg.Addr, DB: cfg.DB}, nil
}

// New builds a client, it dials lazily
func New(cfg Config) (*redis.Client, error) {
	o, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(o), nil
}

// Pinger adapts a client to the store Pinger seam
type Pinger struct{ C *redis.Client }

// Ping round trips a PING
func (p Pinger) Ping(ctx context.Context) error { return p.C.Ping(ctx).Err() }
