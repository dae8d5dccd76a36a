package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter serves both the root mux and the subrouters chi hands back
type chiRouter struct{ r chi.Router }

// AdaptChi wraps a chi mux in the Router seam
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) Get(p string, h Handler)  { c.r.Method(http.MethodGet, p, http.HandlerFunc(h)) }
func (c chiRouter) Post(p string, h Handler) { c.r.Method(http.MethodPost, p, http.HandlerFunc(h)) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

// Group shares the parent path, middlewares added inside stay inside
func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(g chi.Router) { fn(chiRouter{r: g}) })
}

// Route mounts a subrouter at pattern
func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

// Mux exposes the underlying handler, the root *chi.Mux for AdaptChi
func (c chiRouter) Mux() http.Handler { return c.r }
