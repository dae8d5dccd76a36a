package modkit

import (
	"net/http"
	"strings"

	"github.com/Vagvedi/gitrekt/internal/modkit/httpkit"
	str "github.com/Vagvedi/gitrekt/internal/platform/strings"
)

// Option adjusts a module before it is built
type Option func(*Built)

// Built is the resolved module shape
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Extra runs after the module's own routes, on the same router
	Extra func(httpkit.Router)
}

// WithName sets the name used in logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module under a path, empty or "/" mounts at the parent root
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends module wide middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithRoutes registers extra endpoints next to the module's own
func WithRoutes(fn func(httpkit.Router)) Option { return func(b *Built) { b.Extra = fn } }

// Build applies opts in order, later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Root reports whether the module mounts at the parent root
func (b Built) Root() bool { return strings.Trim(b.Prefix, " /") == "" }

// Mount registers routes under the prefix behind the module middleware
// a root module mounts in a group so its middleware stays scoped to it
func (b Built) Mount(r httpkit.Router, routes func(httpkit.Router)) {
	mount := func(rr httpkit.Router) {
		rr.Use(b.Mw...)
		routes(rr)
		if b.Extra != nil {
			b.Extra(rr)
		}
	}
	if b.Root() {
		r.Group(mount)
		return
	}
	r.Route(str.MustPrefix(b.Prefix), mount)
}
