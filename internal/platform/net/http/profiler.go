package http

import (
	stdhttp "net/http"
	"strings"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves chi's pprof bundle under base, off unless enabled
// base is cut from the path so the bundle sees its own routes
func MountProfiler(r Router, base string, enabled bool) {
	if !enabled {
		return
	}
	base = "/" + strings.Trim(base, "/")
	pprof := stdhttp.StripPrefix(base, mw.Profiler())
	for _, p := range []string{base, base + "/*"} {
		r.Handle(p, pprof)
	}
}
