package domain

import (
	"context"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
)

// ServicePort is consumed by handlers, the CLI and other modules
type ServicePort interface {
	Analyze(ctx context.Context, in AnalyzeInput) (roast.Report, error)
	Health(ctx context.Context) (HealthReport, error)
}
