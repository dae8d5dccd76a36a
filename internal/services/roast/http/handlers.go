// Package http provides http transport for roasts
package http

import (
	"math"
	stdhttp "net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	gh "github.com/Vagvedi/gitrekt/internal/adapters/github"
	"github.com/Vagvedi/gitrekt/internal/modkit/httpkit"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
	pnet "github.com/Vagvedi/gitrekt/internal/platform/net"
	"github.com/Vagvedi/gitrekt/internal/services/roast/domain"
	svc "github.com/Vagvedi/gitrekt/internal/services/roast/service"
)

// Info is served at the root path
var Info = domain.ServiceInfo{
	Name:        "gitrekt",
	Version:     "1.0.0",
	Description: "GitHub Roaster API",
	Docs:        "/api/v1/health",
}

// Register mounts roast endpoints on the given router
// analyzeMw wraps only the analyze route, the limiter lives there
func Register(r httpkit.Router, s svc.Service, analyzeMw ...func(stdhttp.Handler) stdhttp.Handler) {
	h := &handlers{svc: s}

	r.Group(func(g httpkit.Router) {
		g.Use(analyzeMw...)
		httpkit.Post(g, "/analyze/{username}", h.analyze)
	})
	httpkit.Get(r, "/health", h.health)
}

// RegisterRoot mounts the service info document, outside the versioned api
func RegisterRoot(r httpkit.Router) {
	httpkit.Get(r, "/", func(*stdhttp.Request) (any, error) { return httpkit.Document(Info), nil })
}

type handlers struct{ svc svc.Service }

// swagger:route POST /analyze/{username} Roast roastAnalyze
// @Summary Roast a GitHub user
// @Tags Roast
// @Produce json
// @Param username path string true "GitHub login"
// @Param force query bool false "skip the cache"
// @Param include_analysis query bool false "keep evidence on every roast" default(true)
// @Success 200 {object} roast.Report "ok"
// @Failure 400 {object} httpkit.Envelope "invalid username or query"
// @Failure 404 {object} httpkit.Envelope "user not found"
// @Failure 429 {object} httpkit.Envelope "rate limited, retry_after in seconds"
// @Failure 504 {object} httpkit.Envelope "analysis timed out"
// @Router /analyze/{username} [post]
func (h *handlers) analyze(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	force, err := boolParam(q, "force", false)
	if err != nil {
		return nil, err
	}
	include, err := boolParam(q, "include_analysis", true)
	if err != nil {
		return nil, err
	}

	username := chi.URLParam(r, "username")
	ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), username)
	rep, err := h.svc.Analyze(ctx, domain.AnalyzeInput{
		Username:        username,
		Force:           force,
		IncludeAnalysis: include,
	})
	if err != nil {
		if wait := gh.RetryAfter(err); wait > 0 {
			hdr := stdhttp.Header{}
			hdr.Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			return httpkit.Response{Body: err, Header: hdr}, nil
		}
		return nil, err
	}
	// the report is the whole body, clients read overall_score at the top level
	return httpkit.Document(rep), nil
}

// swagger:route GET /health Roast roastHealth
// @Summary Service and GitHub API health
// @Tags Roast
// @Produce json
// @Success 200 {object} domain.HealthReport "ok"
// @Failure 503 {object} domain.HealthReport "degraded"
// @Router /health [get]
func (h *handlers) health(r *stdhttp.Request) (any, error) {
	rep, err := h.svc.Health(r.Context())
	if err != nil {
		return nil, err
	}
	out := httpkit.Document(rep)
	if rep.Status != domain.StatusOK {
		out.Status = stdhttp.StatusServiceUnavailable
	}
	return out, nil
}

// boolParam accepts only the literal strings true and false
func boolParam(q url.Values, key string, def bool) (bool, error) {
	if !q.Has(key) {
		return def, nil
	}
	switch q.Get(key) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, perr.Newf(perr.ErrorCodeValidation, "%s must be true or false", key)
}
