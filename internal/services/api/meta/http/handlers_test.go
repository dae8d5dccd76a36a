package http

import (
	stdctx "context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	phttp "github.com/Vagvedi/gitrekt/internal/platform/net/http"
)

type pinger struct{ err error }

func (p pinger) Ping(stdctx.Context) error { return p.err }

type slowPinger struct{}

func (slowPinger) Ping(ctx stdctx.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func get(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, d)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
	return rec.Code
}

func TestReady(t *testing.T) {
	refused := pinger{err: errors.New("refused")}
	cases := []struct {
		name   string
		deps   Deps
		want   string
		status int
	}{
		{"nothing configured", Deps{}, CheckOK, stdhttp.StatusOK},
		{"cache ok", Deps{Cache: pinger{}}, CheckOK, stdhttp.StatusOK},
		{"cannot ping", Deps{PG: struct{}{}}, ReadyDegraded, stdhttp.StatusOK},
		{"cache down", Deps{Cache: refused}, CheckFail, stdhttp.StatusServiceUnavailable},
		{"fail beats degraded", Deps{PG: struct{}{}, GitHub: refused}, CheckFail, stdhttp.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out ReadyResponse
			assert.Equal(t, tc.status, get(t, tc.deps, "/ready", &out))
			assert.Equal(t, tc.want, out.Status)
			require.Len(t, out.Checks, 3)
			assert.Equal(t, []string{"pg", "cache", "github"}, []string{out.Checks[0].Name, out.Checks[1].Name, out.Checks[2].Name})
		})
	}
}

func TestReady_ReportsErrorAndHonoursTimeout(t *testing.T) {
	prev := PingTimeout
	PingTimeout = 20 * time.Millisecond
	t.Cleanup(func() { PingTimeout = prev })

	var out ReadyResponse
	get(t, Deps{Cache: slowPinger{}, GitHub: pinger{err: errors.New("rate_limited")}}, "/ready", &out)
	assert.Equal(t, CheckSkipped, out.Checks[0].Status)
	assert.Equal(t, CheckFail, out.Checks[1].Status)
	assert.Contains(t, out.Checks[1].Error, "deadline exceeded")
	assert.Equal(t, "rate_limited", out.Checks[2].Error)
}

func TestServiceAndVersion(t *testing.T) {
	d := Deps{ServiceName: "gitrekt-api", StartedAt: time.Now().Add(-time.Minute), CacheBackend: "memory"}

	var svc ServiceResponse
	get(t, d, "/service", &svc)
	assert.Equal(t, "gitrekt-api", svc.Name)
	assert.Equal(t, "memory", svc.CacheBackend)
	assert.GreaterOrEqual(t, svc.Uptime, int64(59))

	var ver struct {
		Service string `json:"service"`
		Version string `json:"version"`
	}
	get(t, d, "/version", &ver)
	assert.Equal(t, "gitrekt-api", ver.Service)
	assert.Equal(t, "dev", ver.Version)
}

func TestRules_Ordered(t *testing.T) {
	var out RulesResponse
	get(t, Deps{}, "/rules", &out)
	require.Len(t, out.Rules, 8)
	assert.Equal(t, "abandoned_repos", out.Rules[0])
	assert.Equal(t, "slow_repo", out.Rules[7])
}
