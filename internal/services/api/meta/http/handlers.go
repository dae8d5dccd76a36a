// Package http serves the operational meta routes: readiness, build stamp, uptime and rule order
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
	"github.com/Vagvedi/gitrekt/internal/core/version"
	"github.com/Vagvedi/gitrekt/internal/modkit/httpkit"
)

// Pinger is anything the readiness check can ask for liveness
type Pinger interface {
	Ping(stdctx.Context) error
}

// Check statuses, the overall status uses ok, degraded and fail
const (
	CheckOK       = "ok"
	CheckFail     = "fail"
	CheckSkipped  = "skipped"
	CheckUnknown  = "unknown"
	ReadyDegraded = "degraded"
)

// PingTimeout bounds all readiness pings together
var PingTimeout = 2 * time.Second

// Deps feed the meta routes
// PG, Cache and GitHub may be nil, which reads as skipped
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	CacheBackend string
	PG           any
	Cache        any
	GitHub       any
}

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	m := meta{d}
	httpkit.Get(r, "/ready", m.ready)
	httpkit.Get(r, "/version", m.version)
	httpkit.Get(r, "/service", m.service)
	httpkit.Get(r, "/rules", m.rules)
}

type meta struct{ Deps }

// ReadyCheck is one dependency result
type ReadyCheck struct {
	Name   string `json:"name"   example:"cache"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:6379 connect: connection refused"`
}

// ReadyResponse is the readiness verdict
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse is the uptime payload
type ServiceResponse struct {
	Name         string `json:"name"          example:"gitrekt-api"`
	Started      string `json:"started"       example:"2025-09-03T13:00:00Z"`
	Uptime       int64  `json:"uptime"        example:"300"`
	CacheBackend string `json:"cache_backend" example:"memory"`
}

// RulesResponse lists rule ids in evaluation order
type RulesResponse struct {
	Rules []string `json:"rules" example:"abandoned_repos,activity_gaps"`
}

type dependency struct {
	name   string
	target any
}

func (p dependency) run(ctx stdctx.Context) ReadyCheck {
	c := ReadyCheck{Name: p.name, Status: CheckUnknown}
	switch t := p.target.(type) {
	case nil:
		c.Status = CheckSkipped
	case Pinger:
		if err := t.Ping(ctx); err != nil {
			c.Status, c.Error = CheckFail, err.Error()
		} else {
			c.Status = CheckOK
		}
	}
	return c
}

// verdict folds checks, one failure fails and an unpingable dependency degrades
func verdict(checks []ReadyCheck) string {
	out := CheckOK
	for _, c := range checks {
		switch {
		case c.Status == CheckFail:
			return CheckFail
		case c.Status == CheckUnknown:
			out = ReadyDegraded
		}
	}
	return out
}

// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ready or degraded"
// @Failure 503 {object} ReadyResponse "a dependency failed"
// @Router /meta/ready [get]
func (m meta) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), PingTimeout)
	defer cancel()

	targets := []dependency{{"pg", m.PG}, {"cache", m.Cache}, {"github", m.GitHub}}
	checks := iter.Map(targets, func(p *dependency) ReadyCheck { return p.run(ctx) })

	out := ReadyResponse{Status: verdict(checks), Checks: checks, Now: time.Now().UTC().Format(time.RFC3339)}
	if out.Status == CheckFail {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (m meta) version(*http.Request) (any, error) {
	return version.Info(m.ServiceName), nil
}

// @Summary Service name, start time and uptime in seconds
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (m meta) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:         m.ServiceName,
		Started:      m.StartedAt.UTC().Format(time.RFC3339),
		Uptime:       int64(time.Since(m.StartedAt).Seconds()),
		CacheBackend: m.CacheBackend,
	}, nil
}

// @Summary Roast rules in evaluation order
// @Tags Meta
// @Produce json
// @Success 200 {object} RulesResponse
// @Router /meta/rules [get]
func (m meta) rules(*http.Request) (any, error) {
	var ids []string
	for _, rule := range roast.DefaultRules() {
		ids = append(ids, rule.ID)
	}
	return RulesResponse{Rules: ids}, nil
}
