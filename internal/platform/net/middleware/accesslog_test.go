package middleware_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vagvedi/gitrekt/internal/platform/logger"
	"github.com/Vagvedi/gitrekt/internal/platform/net/middleware"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(logger.Set(zerolog.New(&buf)))
	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		m := map[string]any{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	return out
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestAccessLog_StatusAndBytes(t *testing.T) {
	buf := captureLog(t)
	h := middleware.AccessLog(middleware.AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "roasted")
	}))

	rr := serve(h, "/api/v1/analyze/octocat")
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "roasted", rr.Body.String())

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "info", got[0]["level"])
	assert.Equal(t, float64(201), got[0]["status"])
	assert.Equal(t, float64(7), got[0]["bytes"])
	assert.Equal(t, "/api/v1/analyze/octocat", got[0]["path"])
}

func TestAccessLog_ImplicitOK(t *testing.T) {
	buf := captureLog(t)
	h := middleware.AccessLog(middleware.AccessLogOptions{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	serve(h, "/")
	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, float64(200), got[0]["status"])
}

func TestAccessLog_Levels(t *testing.T) {
	buf := captureLog(t)
	boom := middleware.AccessLog(middleware.AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	slow := middleware.AccessLog(middleware.AccessLogOptions{Slow: time.Millisecond})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))

	serve(boom, "/x")
	serve(slow, "/y")

	got := lines(t, buf)
	require.Len(t, got, 2)
	assert.Equal(t, "error", got[0]["level"])
	assert.Equal(t, "warn", got[1]["level"])
	assert.Equal(t, true, got[1]["slow"])
}

func TestAccessLog_SkipsHealthChecks(t *testing.T) {
	buf := captureLog(t)
	h := middleware.AccessLog(middleware.AccessLogOptions{Skip: []string{"/health"}})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	assert.Equal(t, http.StatusOK, serve(h, "/health").Code)
	assert.Empty(t, lines(t, buf))
}

func TestAccessLog_CarriesRequestID(t *testing.T) {
	buf := captureLog(t)
	h := middleware.RequestID()(middleware.AccessLog(middleware.AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "req-42", got[0]["request_id"])
}
