package repokit

import (
	"context"
	"time"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
)

// PingTimeout bounds MustPing when ctx carries no deadline
var PingTimeout = 5 * time.Second

// MustPing panics if a dependency does not answer a Ping, used at boot
func MustPing(ctx context.Context, name string, p interface{ Ping(context.Context) error }) {
	if p == nil {
		panic(perr.Newf(perr.ErrorCodeUnavailable, "%s: nil dependency", name))
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, PingTimeout)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		panic(perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s ping failed", name))
	}
}

// MustGuard runs the store guard and panics on any error
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(perr.Wrapf(err, perr.ErrorCodeUnavailable, "dependency guard failed"))
	}
}
