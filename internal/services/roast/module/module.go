// Package module wires roasts into the API using modkit
package module

import (
	"net/http"

	modkit "github.com/Vagvedi/gitrekt/internal/modkit"
	"github.com/Vagvedi/gitrekt/internal/modkit/httpkit"
	roasthttp "github.com/Vagvedi/gitrekt/internal/services/roast/http"
	roastsvc "github.com/Vagvedi/gitrekt/internal/services/roast/service"
)

// Config carries what the roast module needs beyond the shared deps
type Config struct {
	// Service is the built workflow, the api binary and the CLI share its construction
	Service roastsvc.Service
	// AnalyzeMw wraps only the analyze route, typically the per client limiter
	AnalyzeMw []func(http.Handler) http.Handler
}

// Module serves analyze and health
type Module struct {
	b   modkit.Built
	cfg Config
}

// New builds the roast module, it mounts at the api root by default
func New(_ modkit.Deps, cfg Config, opts ...modkit.Option) *Module {
	if cfg.Service == nil {
		panic("roast module requires a service")
	}
	return &Module{
		b:   modkit.Build(append([]modkit.Option{modkit.WithName("roast")}, opts...)...),
		cfg: cfg,
	}
}

// MountRoutes mounts the roast routes
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { roasthttp.Register(rr, m.cfg.Service, m.cfg.AnalyzeMw...) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

var _ modkit.Module = (*Module)(nil)
