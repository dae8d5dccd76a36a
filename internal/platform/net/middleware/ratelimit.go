package middleware

import (
	"math"
	"net"
	stdhttp "net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	phttp "github.com/Vagvedi/gitrekt/internal/platform/net/http"
)

// RateLimitOptions configures the per client limiter
// Requests are allowed per Window, refilled evenly
type RateLimitOptions struct {
	Requests int
	Window   time.Duration

	// IdleTTL drops limiters of clients not seen for this long, default 10 windows
	IdleTTL time.Duration

	// KeyFunc picks the client key, default is the remote ip (pair with RealIP)
	KeyFunc func(*stdhttp.Request) string

	now func() time.Time
}

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimit rejects clients that exceed Requests per Window with a JSON 429 and Retry-After
func RateLimit(o RateLimitOptions) func(stdhttp.Handler) stdhttp.Handler {
	if o.Requests <= 0 || o.Window <= 0 {
		return func(next stdhttp.Handler) stdhttp.Handler { return next }
	}
	if o.IdleTTL <= 0 {
		o.IdleTTL = 10 * o.Window
	}
	if o.KeyFunc == nil {
		o.KeyFunc = clientIP
	}
	if o.now == nil {
		o.now = time.Now
	}

	every := rate.Every(o.Window / time.Duration(o.Requests))

	var (
		mu       sync.Mutex
		visitors = map[string]*visitor{}
		lastGC   = o.now()
	)

	reserve := func(key string) time.Duration {
		mu.Lock()
		defer mu.Unlock()

		now := o.now()
		if now.Sub(lastGC) > o.IdleTTL {
			for k, v := range visitors {
				if now.Sub(v.seen) > o.IdleTTL {
					delete(visitors, k)
				}
			}
			lastGC = now
		}

		v, ok := visitors[key]
		if !ok {
			v = &visitor{lim: rate.NewLimiter(every, o.Requests)}
			visitors[key] = v
		}
		v.seen = now

		res := v.lim.ReserveN(now, 1)
		if d := res.DelayFrom(now); d > 0 {
			res.CancelAt(now)
			return d
		}
		return 0
	}

	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			wait := reserve(o.KeyFunc(r))
			if wait <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			// RespondError echoes the header as retry_after
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			phttp.RespondError(w, r, perr.Newf(perr.ErrorCodeTooManyRequests,
				"rate limit exceeded, maximum %d requests per %s", o.Requests, o.Window))
		})
	}
}

func clientIP(r *stdhttp.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
