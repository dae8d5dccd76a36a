package module

import (
	"context"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/services/roast/domain"
	roastsvc "github.com/Vagvedi/gitrekt/internal/services/roast/service"
)

// Ports returns the analyze and health port
func (m *Module) Ports() any { return adaptRoastPort{svc: m.cfg.Service} }

type adaptRoastPort struct{ svc roastsvc.Service }

// Analyze roasts one GitHub user
func (a adaptRoastPort) Analyze(ctx context.Context, in domain.AnalyzeInput) (roast.Report, error) {
	return a.svc.Analyze(ctx, in)
}

// Health reports GitHub API reachability
func (a adaptRoastPort) Health(ctx context.Context) (domain.HealthReport, error) {
	return a.svc.Health(ctx)
}

var _ domain.ServicePort = adaptRoastPort{}

// HealthPinger turns the roast health report into a readiness ping
type HealthPinger struct{ Port domain.ServicePort }

// Ping fails when GitHub is unreachable or the token is out of quota
func (h HealthPinger) Ping(ctx context.Context) error {
	rep, err := h.Port.Health(ctx)
	if err != nil {
		return err
	}
	if rep.Status != domain.StatusOK {
		if rep.GitHubAPI.Error != "" {
			return perr.Newf(perr.ErrorCodeUnavailable, "github %s: %s", rep.GitHubAPI.Status, rep.GitHubAPI.Error)
		}
		return perr.Newf(perr.ErrorCodeUnavailable, "github %s", rep.GitHubAPI.Status)
	}
	return nil
}
