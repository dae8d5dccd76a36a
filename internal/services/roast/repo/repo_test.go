package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
)

func sampleReport() roast.Report {
	return roast.Report{
		AnalysisID:   "a-1",
		Username:     "Octocat",
		OverallScore: 42,
		Metrics:      roast.ReportMetrics{TotalRepos: 3, PrimaryLanguages: []string{"Go"}},
		Roasts: []roast.Roast{{
			Type:     roast.TypeLowEngagement,
			Severity: roast.SeverityInfo,
			Title:    "t",
			Message:  "m",
			Evidence: roast.Evidence{"total_stars": 1},
		}},
		FinalVerdict: "v",
		GeneratedAt:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestKey_FoldsCase(t *testing.T) {
	assert.Equal(t, Key("OctoCat"), Key(" octocat "))
	assert.Equal(t, "roast:octocat", Key("OCTOCAT"))
}

func TestMemory_HitMissAndExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", sampleReport()))
	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, got.OverallScore)

	now = now.Add(time.Minute)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_SweepsExpiredOnWrite(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }
	m.sweepAt = 2

	require.NoError(t, m.Set(ctx, "a", sampleReport()))
	require.NoError(t, m.Set(ctx, "b", sampleReport()))
	now = now.Add(2 * time.Minute)
	require.NoError(t, m.Set(ctx, "c", sampleReport()))
	assert.Equal(t, 1, m.Len())
}

// fakeKV keeps string values in a map and records ttls
type fakeKV struct {
	vals   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{vals: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.vals[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	b, _ := value.([]byte)
	f.vals[key] = string(b)
	f.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Ping(context.Context) *redis.StatusCmd { return redis.NewStatusResult("PONG", nil) }

func TestRedis_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	c := newRedis(kv, 0)

	_, ok, err := c.Get(ctx, Key("octocat"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, Key("octocat"), sampleReport()))
	assert.Equal(t, DefaultTTL, kv.ttls["roast:octocat"])

	got, ok, err := c.Get(ctx, Key("OCTOCAT"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Octocat", got.Username)
	assert.Equal(t, roast.SeverityInfo, got.Roasts[0].Severity)
	assert.True(t, got.GeneratedAt.Equal(sampleReport().GeneratedAt))
	assert.NoError(t, c.Ping(ctx))
}

func TestRedis_Errors(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	c := newRedis(kv, time.Minute)

	kv.vals["bad"] = "{not json"
	_, _, err := c.Get(ctx, "bad")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeJSON))

	kv.getErr = errors.New("conn reset")
	_, _, err = c.Get(ctx, "any")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeUnavailable))
}
