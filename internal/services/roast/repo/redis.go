package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
)

// kv is the slice of the go-redis client the cache needs
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Redis stores reports as JSON strings with SET EX
type Redis struct {
	c   kv
	ttl time.Duration
}

// NewRedis wraps a go-redis client, ttl <= 0 uses DefaultTTL
func NewRedis(c *redis.Client, ttl time.Duration) *Redis {
	return newRedis(c, ttl)
}

func newRedis(c kv, ttl time.Duration) *Redis {
	if c == nil {
		panic("repo.Redis requires a non nil client")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{c: c, ttl: ttl}
}

// Get reads and decodes a cached report, redis.Nil is a miss
func (r *Redis) Get(ctx context.Context, key string) (roast.Report, bool, error) {
	b, err := r.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return roast.Report{}, false, nil
	}
	if err != nil {
		return roast.Report{}, false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "redis get %s", key)
	}
	var out roast.Report
	if err := json.Unmarshal(b, &out); err != nil {
		return roast.Report{}, false, perr.Wrapf(err, perr.ErrorCodeJSON, "redis decode %s", key)
	}
	return out, true, nil
}

// Set encodes and stores a report with the cache ttl
func (r *Redis) Set(ctx context.Context, key string, rep roast.Report) error {
	b, err := json.Marshal(rep)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "redis encode %s", key)
	}
	if err := r.c.Set(ctx, key, b, r.ttl).Err(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "redis set %s", key)
	}
	return nil
}

// Ping checks the connection
func (r *Redis) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }
