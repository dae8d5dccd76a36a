package module

import (
	"context"
	"time"

	gh "github.com/Vagvedi/gitrekt/internal/adapters/github"
	modkit "github.com/Vagvedi/gitrekt/internal/modkit"
	"github.com/Vagvedi/gitrekt/internal/modkit/repokit"
	"github.com/Vagvedi/gitrekt/internal/platform/config"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/services/roast/repo"
	roastsvc "github.com/Vagvedi/gitrekt/internal/services/roast/service"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CachePG     = "pg"
)

// Options controls the GitHub client, the workflow and the report cache
type Options struct {
	GitHub       gh.Options
	Service      roastsvc.Config
	CacheBackend string
	CacheTTL     time.Duration
}

// FromConfig reads GITHUB_*, ANALYSIS_* and CACHE_BACKEND from the root config
func FromConfig(cfg config.Conf) Options {
	g := cfg.Prefix("GITHUB_")
	a := cfg.Prefix("ANALYSIS_")
	return Options{
		GitHub: gh.Options{
			BaseURL:        g.MayString("API_URL", ""),
			TokensCSV:      g.MayString("TOKEN", ""),
			Timeout:        g.MayDuration("TIMEOUT", 10*time.Second),
			GraphQLTimeout: time.Duration(g.MayInt("GRAPHQL_TIMEOUT", 10000)) * time.Millisecond,
			RatePerSec:     g.MayFloat64("RPS", 10),
			Burst:          g.MayInt("BURST", 10),
		},
		Service: roastsvc.Config{
			Timeout:     time.Duration(a.MayInt("TIMEOUT_MS", 30000)) * time.Millisecond,
			Concurrency: a.MayInt("CONCURRENCY", 8),
		},
		CacheBackend: cfg.MayEnum("CACHE_BACKEND", CacheMemory, CacheMemory, CacheRedis, CachePG),
		CacheTTL:     a.MayDuration("CACHE_TTL", repo.DefaultTTL),
	}
}

// OpenCache builds the configured backend over the shared deps
// the pg backend applies its schema first
func OpenCache(ctx context.Context, deps modkit.Deps, o Options) (repo.Cache, error) {
	switch o.CacheBackend {
	case "", CacheMemory:
		return repo.NewMemory(o.CacheTTL), nil
	case CacheRedis:
		if deps.Redis == nil {
			return nil, perr.New(perr.ErrorCodeInvalidArgument, "redis cache backend requires REDIS_URL")
		}
		return repo.NewRedis(deps.Redis, o.CacheTTL), nil
	case CachePG:
		if deps.PG == nil {
			return nil, perr.New(perr.ErrorCodeInvalidArgument, "pg cache backend requires SERVICE_PGSQL_DBURL")
		}
		if err := repo.EnsureSchema(ctx, deps.PG); err != nil {
			return nil, err
		}
		if n, err := repo.Prune(ctx, deps.PG, o.CacheTTL); err != nil {
			deps.Log.Warn().Err(err).Msg("roast_cache prune failed")
		} else if n > 0 {
			deps.Log.Info().Int64("rows", n).Msg("roast_cache pruned")
		}
		return repokit.MustBind(repo.NewPG(o.CacheTTL), deps.PG), nil
	}
	return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "unknown cache backend %q", o.CacheBackend)
}

// NewService builds the GitHub client and the workflow around it
func NewService(o Options, cache repo.Cache, opts ...roastsvc.Option) *roastsvc.Svc {
	return roastsvc.New(gh.NewClient(o.GitHub), cache, o.Service, opts...)
}
