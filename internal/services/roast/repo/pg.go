package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
	"github.com/Vagvedi/gitrekt/internal/modkit/repokit"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/store"
)

// Schema creates the cache table and its expiry index, safe to run on every boot
var Schema = []string{
	`create table if not exists roast_cache (
	cache_key  text primary key,
	report     jsonb not null,
	cached_at  timestamptz not null default now()
)`,
	`create index if not exists roast_cache_cached_at_idx on roast_cache (cached_at)`,
}

type (
	// PG is a binder that binds the cache to a Queryer or TxRunner
	PG struct{ TTL time.Duration }
	// pgCache implements Cache over a Queryer
	pgCache struct {
		q   repokit.Queryer
		ttl time.Duration
	}
)

// NewPG returns a binder for the postgres cache, ttl <= 0 uses DefaultTTL
func NewPG(ttl time.Duration) repokit.Binder[Cache] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return PG{TTL: ttl}
}

// Bind wires a Queryer to the cache
func (b PG) Bind(q repokit.Queryer) Cache { return &pgCache{q: q, ttl: b.TTL} }

// EnsureSchema applies Schema in one transaction
func EnsureSchema(ctx context.Context, tx repokit.TxRunner) error {
	err := repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
		for _, stmt := range Schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return perr.FromPostgres(err, "roast_cache schema")
	}
	return nil
}

// Prune deletes rows older than ttl and reports how many went
func Prune(ctx context.Context, q repokit.Queryer, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	tag, err := q.Exec(ctx, `delete from roast_cache where cached_at <= now() - make_interval(secs => $1)`, ttl.Seconds())
	if err != nil {
		return 0, perr.FromPostgres(err, "roast_cache prune")
	}
	return tag.RowsAffected(), nil
}

func (c *pgCache) Get(ctx context.Context, key string) (roast.Report, bool, error) {
	const sql = `
select report
from roast_cache
where cache_key = $1
and cached_at > now() - make_interval(secs => $2)`

	raw, err := store.Scalar[[]byte](ctx, c.q, sql, key, c.ttl.Seconds())
	if errors.Is(err, pgx.ErrNoRows) {
		return roast.Report{}, false, nil
	}
	if err != nil {
		return roast.Report{}, false, perr.FromPostgres(err, "roast_cache get")
	}

	var out roast.Report
	if err := json.Unmarshal(raw, &out); err != nil {
		return roast.Report{}, false, perr.Wrapf(err, perr.ErrorCodeJSON, "roast_cache decode %s", key)
	}
	return out, true, nil
}

func (c *pgCache) Set(ctx context.Context, key string, r roast.Report) error {
	const sql = `
insert into roast_cache (cache_key, report, cached_at)
values ($1, $2::jsonb, now())
on conflict (cache_key) do update
set report = excluded.report, cached_at = excluded.cached_at`

	b, err := json.Marshal(r)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "roast_cache encode %s", key)
	}
	// one retry for serialization failures and server restarts
	err = store.ExecOne(ctx, c.q, sql, key, string(b))
	if perr.IsRetryable(err) {
		err = store.ExecOne(ctx, c.q, sql, key, string(b))
	}
	if err != nil {
		return perr.FromPostgres(err, "roast_cache set")
	}
	return nil
}

// Ping succeeds when the underlying seam can ping or does not know how
func (c *pgCache) Ping(ctx context.Context) error {
	if p, ok := c.q.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
