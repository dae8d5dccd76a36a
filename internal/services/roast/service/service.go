// Package service contains the roast workflow
package service

import (
	"context"
	"errors"
	"time"

	"github.com/sourcegraph/conc/iter"

	gh "github.com/Vagvedi/gitrekt/internal/adapters/github"
	"github.com/Vagvedi/gitrekt/internal/core/analysis"
	"github.com/Vagvedi/gitrekt/internal/core/metrics"
	"github.com/Vagvedi/gitrekt/internal/core/roast"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
	"github.com/Vagvedi/gitrekt/internal/platform/net/http/bind"
	"github.com/Vagvedi/gitrekt/internal/services/roast/domain"
	"github.com/Vagvedi/gitrekt/internal/services/roast/repo"
)

// GitHub is the slice of the GitHub adapter the workflow reads from
type GitHub interface {
	UserByLogin(ctx context.Context, login string) (gh.User, error)
	ListUserRepos(ctx context.Context, login string) ([]gh.Repo, error)
	CommitHistory(ctx context.Context, owner, name string, limit int) (gh.History, error)
	Readme(ctx context.Context, owner, name string) (string, error)
	RepoLanguages(ctx context.Context, owner, name string) (map[string]int64, error)
	RateLimit(ctx context.Context) (gh.RateStatus, error)
}

// Service defines the roast service contract
type Service interface {
	domain.ServicePort
}

// Config tunes the workflow
type Config struct {
	// Timeout bounds one analysis, default 30s
	Timeout time.Duration
	// Concurrency bounds the per repository fan-out, default 8
	Concurrency int
	// CommitLimit is the commit page size fetched per repository, default 100
	CommitLimit int
}

// Svc implements the roast service
type Svc struct {
	gh     GitHub
	cache  repo.Cache
	engine *roast.Engine
	cfg    Config
	log    *logger.Logger
	now    func() time.Time
}

// Option customizes Svc
type Option func(*Svc)

// WithClock replaces the time source for the aggregate and the rule engine
func WithClock(now func() time.Time) Option { return func(s *Svc) { s.now = now } }

// WithLogger sets the service logger
func WithLogger(l *logger.Logger) Option { return func(s *Svc) { s.log = l } }

// New constructs a roast service, cache may be nil to disable caching
func New(client GitHub, cache repo.Cache, cfg Config, opts ...Option) *Svc {
	if client == nil {
		panic("roast.Service requires a non nil GitHub client")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if cfg.CommitLimit <= 0 {
		cfg.CommitLimit = 100
	}

	s := &Svc{gh: client, cache: cache, cfg: cfg, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logger.Named("roast")
	}
	s.engine = roast.NewEngine(roast.WithClock(s.now), roast.WithLogger(s.log))
	return s
}

// Analyze fetches, measures, judges and scores one GitHub user
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeInput) (roast.Report, error) {
	if err := bind.Struct(in); err != nil {
		return roast.Report{}, err
	}
	ctx = logger.WithRequest(ctx, "", in.Username)

	key := repo.Key(in.Username)
	if !in.Force {
		if rep, ok := s.cached(ctx, key); ok {
			return shape(rep, in.IncludeAnalysis), nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	rep, err := s.analyze(ctx, in.Username)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return roast.Report{}, perr.Timeoutf("analysis of %s timed out after %s", in.Username, s.cfg.Timeout)
		}
		return roast.Report{}, err
	}

	if s.cache != nil {
		// detached from the analysis deadline so a slow run still gets cached
		sctx, scancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		if err := s.cache.Set(sctx, key, rep); err != nil {
			logger.From(ctx, *s.log).Warn().Err(err).Msg("cache write failed")
		}
		scancel()
	}

	return shape(rep, in.IncludeAnalysis), nil
}

func (s *Svc) cached(ctx context.Context, key string) (roast.Report, bool) {
	if s.cache == nil {
		return roast.Report{}, false
	}
	rep, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.From(ctx, *s.log).Warn().Err(err).Str("key", key).Msg("cache read failed")
		return roast.Report{}, false
	}
	if !ok {
		return roast.Report{}, false
	}
	rep.CacheHit = true
	return rep, true
}

func shape(rep roast.Report, includeAnalysis bool) roast.Report {
	if includeAnalysis {
		return rep
	}
	return rep.WithoutEvidence()
}

func (s *Svc) analyze(ctx context.Context, username string) (roast.Report, error) {
	log := logger.From(ctx, *s.log)
	started := s.now()

	user, err := s.gh.UserByLogin(ctx, username)
	if err != nil {
		return roast.Report{}, err
	}
	list, err := s.gh.ListUserRepos(ctx, user.Login)
	if err != nil {
		return roast.Report{}, err
	}

	repos := iter.Mapper[gh.Repo, metrics.Repository]{MaxGoroutines: s.cfg.Concurrency}.
		Map(list, func(r *gh.Repo) metrics.Repository {
			return s.repository(ctx, user.Login, *r)
		})

	// fallbacks hide a blown deadline, surface it instead of a partial roast
	if err := ctx.Err(); err != nil {
		return roast.Report{}, err
	}

	now := s.now()
	u := analysis.BuildUser(analysis.Profile{Login: user.Login, CreatedAt: user.CreatedAt}, repos, now)
	issues := s.engine.Evaluate(u)
	rep := roast.NewReport(u, issues, now)

	log.Info().
		Int("repos", len(repos)).
		Int("issues", len(issues)).
		Int("score", rep.OverallScore).
		Dur("took", s.now().Sub(started)).
		Msg("analysis complete")
	return rep, nil
}

// repository gathers one repository, any fetch failure degrades to the listing only record
func (s *Svc) repository(ctx context.Context, login string, r gh.Repo) metrics.Repository {
	rec := record(r)
	owner := r.Owner.Login
	if owner == "" {
		owner = login
	}

	fail := func(what string, err error) metrics.Repository {
		logger.From(ctx, *s.log).Warn().Err(err).Str("repo", owner+"/"+r.Name).Str("step", what).Msg("repository fetch failed, using fallback")
		return analysis.FallbackRepository(rec)
	}

	hist, err := s.gh.CommitHistory(ctx, owner, r.Name, s.cfg.CommitLimit)
	if err != nil {
		return fail("commits", err)
	}
	readme, err := s.gh.Readme(ctx, owner, r.Name)
	if err != nil {
		return fail("readme", err)
	}
	langs, err := s.gh.RepoLanguages(ctx, owner, r.Name)
	if err != nil {
		return fail("languages", err)
	}

	return analysis.BuildRepository(analysis.RepoSource{
		Record:      rec,
		Commits:     hist.Commits,
		CommitTotal: hist.Total,
		Readme:      readme,
		Languages:   langs,
	})
}

func record(r gh.Repo) analysis.RepoRecord {
	return analysis.RepoRecord{
		Name:       r.Name,
		Fork:       r.Fork,
		Archived:   r.Archived,
		SizeKB:     r.Size,
		CreatedAt:  r.CreatedAt,
		PushedAt:   r.PushedAt,
		Language:   r.Language,
		OpenIssues: r.OpenIssues,
		Stars:      r.Stargazers,
		Forks:      r.ForksCount,
	}
}

// Health asks the GitHub API for its quota
// only a failing quota call is degraded, an exhausted quota is still ok with github_api rate_limited
func (s *Svc) Health(ctx context.Context) (domain.HealthReport, error) {
	out := domain.HealthReport{Status: domain.StatusOK, Timestamp: s.now().UTC()}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rs, err := s.gh.RateLimit(ctx)
	switch {
	case err != nil:
		out.Status = domain.StatusDegraded
		out.GitHubAPI = domain.GitHubStatus{Status: domain.GitHubDisconnected, Error: perr.WireFrom(err).Message}
		if gh.IsRateLimited(err) {
			out.GitHubAPI.Status = domain.GitHubRateLimited
		}
	default:
		out.GitHubAPI = domain.GitHubStatus{
			Status:    domain.GitHubConnected,
			RateLimit: &domain.RateLimitInfo{Remaining: rs.Remaining, Limit: rs.Limit, Reset: rs.Reset},
		}
		if rs.Remaining == 0 {
			out.GitHubAPI.Status = domain.GitHubRateLimited
		}
	}
	return out, nil
}
