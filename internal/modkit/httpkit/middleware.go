package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"github.com/Vagvedi/gitrekt/internal/platform/net/middleware"
)

// StackOptions tunes CommonStackWith
type StackOptions struct {
	CORS middleware.CORSOptions
	// Timeout bounds every request, default 30s
	Timeout time.Duration
	// SlowRequest logs at warn past this, default 5s
	SlowRequest time.Duration
}

// CommonStackWith is the middleware chain every API route runs through
// order matters, the request id must exist before logging and recovery use it
func CommonStackWith(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 5 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest, Skip: []string{"/health"}}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(o.CORS),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
