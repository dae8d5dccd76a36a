// Package module wires the meta endpoints into the API
package module

import (
	"time"

	modkit "github.com/Vagvedi/gitrekt/internal/modkit"
	"github.com/Vagvedi/gitrekt/internal/modkit/httpkit"
	metahttp "github.com/Vagvedi/gitrekt/internal/services/api/meta/http"
)

// Config names the service and the seams the readiness check pings
type Config struct {
	ServiceName  string
	CacheBackend string
	Cache        any
	// GitHub reports upstream reachability, typically the roast health port
	GitHub any
}

// Module serves readiness, version, service and rules under /meta
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New builds the meta module, it mounts under /meta unless opts say otherwise
func New(deps modkit.Deps, cfg Config, opts ...modkit.Option) *Module {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "gitrekt-api"
	}
	d := metahttp.Deps{
		ServiceName:  cfg.ServiceName,
		StartedAt:    time.Now(),
		CacheBackend: cfg.CacheBackend,
		Cache:        cfg.Cache,
		GitHub:       cfg.GitHub,
	}
	// a nil runner stored in the any field would read as configured
	if deps.PG != nil {
		d.PG = deps.PG
	}
	return &Module{
		b:    modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...),
		deps: d,
	}
}

// MountRoutes mounts the meta routes
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports exposes nothing, meta only reads other modules
func (m *Module) Ports() any { return nil }

var _ modkit.Module = (*Module)(nil)
