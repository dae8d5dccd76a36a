// Package logger wraps zerolog with a process root logger and request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/Vagvedi/gitrekt/internal/platform/config/raw"
)

// Logger is the project logging type
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level      string
	Format     string // console or json
	Service    string
	Writer     io.Writer
	WithCaller bool
	// StaticFields are stamped on every line
	StaticFields map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER
// it goes through raw so config can log without an import cycle
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:      strings.ToLower(rc.Get("LEVEL", "info")),
		Format:     strings.ToLower(rc.Get("FORMAT", "console")),
		Service:    rc.Get("SERVICE", ""),
		WithCaller: rc.GetBool("CALLER", false),
	}
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Init builds the root logger, only the first call wins
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

// Set replaces the root logger, used by the CLI and by tests capturing output
// the returned func restores the previous root
func Set(l Logger) (restore func()) {
	Get()
	prev := root.Swap(&l)
	return func() { root.Store(prev) }
}

func build(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zc := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		zc = zc.Str("service", opt.Service)
	}
	for k, v := range opt.StaticFields {
		zc = zc.Str(k, v)
	}
	if opt.WithCaller {
		zc = zc.Caller()
	}
	return zc.Logger()
}

// Get returns the root logger, initialising it from the env on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		if strings.EqualFold(strings.TrimSpace(s), "warning") {
			return zerolog.WarnLevel
		}
		return zerolog.InfoLevel
	}
	return lvl
}

type ctxKey struct{ name string }

var (
	keyRequestID = ctxKey{"req_id"}
	keyUser      = ctxKey{"github_user"}
)

// WithRequest annotates ctx with the request id and the GitHub login being roasted
func WithRequest(ctx context.Context, reqID, user string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if user != "" {
		ctx = context.WithValue(ctx, keyUser, user)
	}
	return ctx
}

// C returns a child of the root logger carrying request_id and github_user from ctx
func C(ctx context.Context) *Logger { return From(ctx, *Get()) }

// From is C for a component logger
// the request id falls back to the one chi's RequestID middleware stored
func From(ctx context.Context, base Logger) *Logger {
	b := base.With()
	reqID, _ := ctx.Value(keyRequestID).(string)
	if reqID == "" {
		reqID = chimw.GetReqID(ctx)
	}
	if reqID != "" {
		b = b.Str("request_id", reqID)
	}
	if u, _ := ctx.Value(keyUser).(string); u != "" {
		b = b.Str("github_user", u)
	}
	l := b.Logger()
	return &l
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
