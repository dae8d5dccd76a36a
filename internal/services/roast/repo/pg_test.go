package repo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vagvedi/gitrekt/internal/modkit/repokit"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/store"
)

type tag int64

func (t tag) String() string      { return "INSERT 0 1" }
func (t tag) RowsAffected() int64 { return int64(t) }

type row struct {
	raw []byte
	err error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.raw
	return nil
}

type fakeQ struct {
	row      row
	execErr  error
	affected int64
	args     []any
	execArgs []any
	stmts    []string
	txs      int
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.stmts = append(f.stmts, sql)
	f.execArgs = args
	return tag(f.affected), f.execErr
}

func (f *fakeQ) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	f.txs++
	return fn(f)
}

func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error) {
	return nil, errors.New("not used")
}

func (f *fakeQ) QueryRow(_ context.Context, _ string, args ...any) store.Row {
	f.args = args
	return f.row
}

var _ repokit.TxRunner = (*fakeQ)(nil)

func TestPGCache_Get(t *testing.T) {
	ctx := context.Background()
	b, err := json.Marshal(sampleReport())
	require.NoError(t, err)

	q := &fakeQ{row: row{raw: b}}
	c := repokit.MustBind(NewPG(90*time.Second), q)

	got, ok, err := c.Get(ctx, "roast:octocat")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleReport().Username, got.Username)
	assert.Equal(t, []any{"roast:octocat", float64(90)}, q.args)

	q.row = row{err: pgx.ErrNoRows}
	_, ok, err = c.Get(ctx, "roast:ghost")
	require.NoError(t, err)
	assert.False(t, ok)

	q.row = row{raw: []byte("{")}
	_, _, err = c.Get(ctx, "roast:bad")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeJSON))
}

func TestPGCache_Set(t *testing.T) {
	ctx := context.Background()

	q := &fakeQ{affected: 1}
	c := NewPG(0).Bind(q)
	require.NoError(t, c.Set(ctx, "roast:octocat", sampleReport()))
	require.Len(t, q.execArgs, 2)
	assert.Equal(t, "roast:octocat", q.execArgs[0])

	q = &fakeQ{affected: 0}
	require.Error(t, NewPG(0).Bind(q).Set(ctx, "roast:octocat", sampleReport()))

	q = &fakeQ{execErr: errors.New("conn reset")}
	require.Error(t, NewPG(0).Bind(q).Set(ctx, "roast:octocat", sampleReport()))
}

func TestNewPG_DefaultTTL(t *testing.T) {
	assert.Equal(t, PG{TTL: DefaultTTL}, NewPG(0))
}

func TestEnsureSchema_OneTx(t *testing.T) {
	q := &fakeQ{}
	require.NoError(t, EnsureSchema(context.Background(), q))
	assert.Equal(t, 1, q.txs)
	assert.Equal(t, Schema, q.stmts)

	q = &fakeQ{execErr: errors.New("permission denied")}
	require.Error(t, EnsureSchema(context.Background(), q))
	assert.Len(t, q.stmts, 1)
}

func TestPrune(t *testing.T) {
	q := &fakeQ{affected: 3}
	n, err := Prune(context.Background(), q, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []any{float64(60)}, q.execArgs)

	_, err = Prune(context.Background(), &fakeQ{execErr: errors.New("conn reset")}, 0)
	require.Error(t, err)
}

type flakyQ struct {
	fakeQ
	fails int
}

func (f *flakyQ) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	if f.fails > 0 {
		f.fails--
		f.stmts = append(f.stmts, sql)
		return tag(0), &pgconn.PgError{Code: "40001"}
	}
	return f.fakeQ.Exec(ctx, sql, args...)
}

func TestPGCache_SetRetriesSerializationFailure(t *testing.T) {
	q := &flakyQ{fakeQ: fakeQ{affected: 1}, fails: 1}
	require.NoError(t, NewPG(0).Bind(q).Set(context.Background(), "roast:octocat", sampleReport()))
	assert.Len(t, q.stmts, 2)

	q = &flakyQ{fakeQ: fakeQ{affected: 1}, fails: 2}
	err := NewPG(0).Bind(q).Set(context.Background(), "roast:octocat", sampleReport())
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUnavailable))
}
