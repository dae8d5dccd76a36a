package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/store"
	"github.com/Vagvedi/gitrekt/internal/platform/testkit"
)

type fakeTx struct {
	store.RowQuerier
	calls int
}

func (f *fakeTx) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	f.calls++
	return fn(f)
}

type cacheRepo struct{ q Queryer }

func TestWithTx(t *testing.T) {
	tx := &fakeTx{}
	var seen Queryer
	err := WithTx(context.Background(), tx, func(q Queryer) error {
		seen = q
		return errors.New("rollback")
	})
	assert.EqualError(t, err, "rollback")
	assert.Equal(t, 1, tx.calls)
	assert.Same(t, tx, seen)

	testkit.MustPanic(t, func() { _ = WithTx(context.Background(), nil, nil) })
}

func TestMustBind(t *testing.T) {
	b := BindFunc[cacheRepo](func(q Queryer) cacheRepo { return cacheRepo{q: q} })
	tx := &fakeTx{}
	assert.Same(t, tx, MustBind[cacheRepo](b, tx).q)

	testkit.MustPanic(t, func() { MustBind[cacheRepo](b, nil) })
}

type pinger struct {
	err      error
	deadline bool
}

func (p *pinger) Ping(ctx context.Context) error {
	_, p.deadline = ctx.Deadline()
	return p.err
}

type guard struct{ err error }

func (g guard) Guard(context.Context) error { return g.err }

func TestMustPing(t *testing.T) {
	testkit.Swap(t, &PingTimeout, 50*time.Millisecond)

	p := &pinger{}
	MustPing(context.Background(), "cache", p)
	assert.True(t, p.deadline)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, perr.IsCode(err, perr.ErrorCodeUnavailable))
		assert.Contains(t, err.Error(), "cache ping failed")
	}()
	MustPing(context.Background(), "cache", &pinger{err: errors.New("refused")})
}

func TestMustGuard(t *testing.T) {
	MustGuard(context.Background(), guard{})
	testkit.MustPanic(t, func() { MustGuard(context.Background(), guard{err: errors.New("pg down")}) })
}
