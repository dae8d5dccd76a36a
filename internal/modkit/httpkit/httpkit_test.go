package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	phttp "github.com/Vagvedi/gitrekt/internal/platform/net/http"
)

func serve(r Router, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestMountAPI_VersionPrefix(t *testing.T) {
	for _, v := range []string{"v2", "/v2", "v2/"} {
		r := phttp.AdaptChi(chi.NewRouter())
		var hits int
		mw := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				hits++
				next.ServeHTTP(w, req)
			})
		}
		MountAPI(r, v, []func(http.Handler) http.Handler{mw}, func(api Router) {
			Get(api, "/rules", func(*http.Request) (any, error) { return []string{"abandoned_repos"}, nil })
		})

		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v2/rules").Code, v)
		assert.Equal(t, 1, hits, v)
	}
}

func TestMountAPIV1_NoMiddleware(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	MountAPIV1(r, nil, func(api Router) {
		Post(api, "/analyze/{username}", func(req *http.Request) (any, error) { return chi.URLParam(req, "username"), nil })
	})

	rr := serve(r, http.MethodPost, "/api/v1/analyze/octocat")
	require.Equal(t, http.StatusOK, rr.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "octocat", env.Data)
}

func TestCall_Outcomes(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Get(r, "/err", func(*http.Request) (any, error) { return nil, perr.NotFoundf("github user ghost not found") })
	Get(r, "/doc", func(*http.Request) (any, error) { return Document(map[string]int{"overall_score": 7}), nil })
	Get(r, "/foreign", func(*http.Request) (any, error) { return nil, errors.New("boom") })
	Get(r, "/custom", func(*http.Request) (any, error) {
		return Response{Status: http.StatusServiceUnavailable, Body: map[string]string{"status": "degraded"}, Header: http.Header{"Retry-After": {"60"}}}, nil
	})

	rr := serve(r, http.MethodGet, "/err")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, perr.ErrorCodeNotFound, env.Code)
	assert.Equal(t, "Not found", env.Error)
	assert.Equal(t, "github user ghost not found", env.Message)

	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/foreign").Code)
	assert.JSONEq(t, `{"overall_score":7}`, serve(r, http.MethodGet, "/doc").Body.String())

	rr = serve(r, http.MethodGet, "/custom")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
}
