package module

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
	modkit "github.com/Vagvedi/gitrekt/internal/modkit"
	phttp "github.com/Vagvedi/gitrekt/internal/platform/net/http"
	"github.com/Vagvedi/gitrekt/internal/services/roast/domain"
)

type stubSvc struct{ calls int }

func (s *stubSvc) Analyze(_ context.Context, in domain.AnalyzeInput) (roast.Report, error) {
	s.calls++
	return roast.Report{Username: in.Username}, nil
}

func (s *stubSvc) Health(context.Context) (domain.HealthReport, error) {
	return domain.HealthReport{Status: domain.StatusOK}, nil
}

func TestModule_MountsAtRootAndWrapsAnalyze(t *testing.T) {
	svc := &stubSvc{}
	var wrapped int
	mw := func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			wrapped++
			next.ServeHTTP(w, r)
		})
	}

	m := New(modkit.Deps{}, Config{Service: svc, AnalyzeMw: []func(stdhttp.Handler) stdhttp.Handler{mw}})
	assert.Equal(t, "roast", m.Name())

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/analyze/octocat", nil))
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, 1, wrapped)

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/health", nil))
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, 1, wrapped, "health is not behind the analyze middleware")

	port, ok := m.Ports().(domain.ServicePort)
	require.True(t, ok)
	rep, err := port.Analyze(context.Background(), domain.AnalyzeInput{Username: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", rep.Username)
}

func TestModule_PrefixOption(t *testing.T) {
	m := New(modkit.Deps{}, Config{Service: &stubSvc{}}, modkit.WithPrefix("/roast"))

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/roast/health", nil))
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
}

func TestModule_RequiresService(t *testing.T) {
	assert.Panics(t, func() { New(modkit.Deps{}, Config{}) })
}
