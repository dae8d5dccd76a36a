// @title         gitrekt API
// @version       1.0.0
// @description   Roasts GitHub users from their public activity

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Vagvedi/gitrekt/internal/modkit"
	"github.com/Vagvedi/gitrekt/internal/modkit/repokit"
	"github.com/Vagvedi/gitrekt/internal/platform/config"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
	phttp "github.com/Vagvedi/gitrekt/internal/platform/net/http"
	"github.com/Vagvedi/gitrekt/internal/platform/net/middleware"
	"github.com/Vagvedi/gitrekt/internal/platform/store"

	"github.com/Vagvedi/gitrekt/internal/services/api"
	roastmod "github.com/Vagvedi/gitrekt/internal/services/roast/module"
)

func main() {
	// a missing .env is fine, real env wins over file values
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := roastmod.FromConfig(root)

	// backends are opened only when the cache needs them
	pgURL := pgCfg.MayString("DBURL", "")
	st, err := store.Open(ctx, store.Config{
		AppName: "gitrekt-api",
		PG: store.PGConfig{
			Enabled:     opts.CacheBackend == roastmod.CachePG,
			URL:         pgURL,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		RDS: store.RedisConfig{
			Enabled: opts.CacheBackend == roastmod.CacheRedis,
			URL:     root.MayString("REDIS_URL", "redis://localhost:6379/0"),
		},
	}, *l)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Cfg: root, Log: *l, PG: st.PG, Redis: st.Redis}
	cache, err := roastmod.OpenCache(ctx, deps, opts)
	if err != nil {
		l.Panic().Err(err).Str("backend", opts.CacheBackend).Msg("cache open failed")
	}
	repokit.MustPing(ctx, "cache", cache)
	svc := roastmod.NewService(opts, cache)

	srv := phttp.NewServer(apiCfg)

	var origins []string
	if u := root.MayString("FRONTEND_URL", ""); u != "" {
		origins = append(origins, u)
	}

	api.Mount(
		srv.Router(),
		api.Options{
			Config:       apiCfg,
			Store:        st,
			Logger:       l,
			Roast:        svc,
			Cache:        cache,
			CacheBackend: opts.CacheBackend,
			CORSOrigins:  origins,
			RateLimit: middleware.RateLimitOptions{
				Requests: root.MayInt("RATE_LIMIT_REQUESTS", 10),
				Window:   time.Duration(root.MayInt("RATE_LIMIT_WINDOW_MS", 60000)) * time.Millisecond,
			},
			Timeout:        opts.Service.Timeout + 5*time.Second,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	l.Info().
		Str("cache", opts.CacheBackend).
		Bool("github_token", opts.GitHub.TokensCSV != "").
		Msg("gitrekt api starting")

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
