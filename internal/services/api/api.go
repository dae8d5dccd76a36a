// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Vagvedi/gitrekt/internal/platform/config"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
	phttp "github.com/Vagvedi/gitrekt/internal/platform/net/http"
	"github.com/Vagvedi/gitrekt/internal/platform/net/middleware"
	"github.com/Vagvedi/gitrekt/internal/platform/store"

	"github.com/Vagvedi/gitrekt/internal/modkit"
	"github.com/Vagvedi/gitrekt/internal/modkit/httpkit"
	"github.com/Vagvedi/gitrekt/internal/modkit/module"
	"github.com/Vagvedi/gitrekt/internal/modkit/swaggerkit"

	metamod "github.com/Vagvedi/gitrekt/internal/services/api/meta/module"
	"github.com/Vagvedi/gitrekt/internal/services/roast/domain"
	roasthttp "github.com/Vagvedi/gitrekt/internal/services/roast/http"
	roastmod "github.com/Vagvedi/gitrekt/internal/services/roast/module"
	roastsvc "github.com/Vagvedi/gitrekt/internal/services/roast/service"
)

// DefaultOrigins are always allowed by CORS, FRONTEND_URL is appended
var DefaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Roast is the analysis workflow, required
	Roast roastsvc.Service
	// Cache is pinged by the readiness check when it can Ping
	Cache        any
	CacheBackend string

	CORSOrigins []string
	RateLimit   middleware.RateLimitOptions
	// Timeout bounds every request, keep it above the analysis timeout
	Timeout time.Duration

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.Redis = opt.Store.Redis
	}

	if mux, ok := r.Mux().(*chi.Mux); ok {
		mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
			phttp.RespondError(w, req, perr.NotFoundf("route %s %s not found", req.Method, req.URL.Path))
		})
	}

	roastModule := roastmod.New(deps, roastmod.Config{
		Service:   opt.Roast,
		AnalyzeMw: []func(http.Handler) http.Handler{middleware.RateLimit(opt.RateLimit)},
	})
	github := roastmod.HealthPinger{Port: module.MustPortsOf[domain.ServicePort](roastModule)}

	mods := []module.Module{
		metamod.New(deps, metamod.Config{CacheBackend: opt.CacheBackend, Cache: opt.Cache, GitHub: github}),
		roastModule,
	}

	stack := httpkit.CommonStackWith(httpkit.StackOptions{
		CORS: middleware.CORSOptions{
			AllowedOrigins: append(append([]string{}, DefaultOrigins...), opt.CORSOrigins...),
			ExposedHeaders: []string{"Retry-After", "X-Request-ID"},
			MaxAge:         3600,
		},
		Timeout: opt.Timeout,
	})

	// service info lives outside the versioned api
	r.Group(func(root phttp.Router) {
		root.Use(stack...)
		roasthttp.RegisterRoot(root)
	})

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
