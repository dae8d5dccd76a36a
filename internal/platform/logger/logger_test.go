package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(Set(build(Options{Level: "debug", Format: "json", Writer: &buf, Service: "gitrekt-api"})))
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"chatty":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestC_CarriesRequestAndUser(t *testing.T) {
	buf := capture(t)

	ctx := WithRequest(context.Background(), "req-123", "octocat")
	C(ctx).Info().Msg("roast started")

	m := lastLine(t, buf)
	assert.Equal(t, "req-123", m["request_id"])
	assert.Equal(t, "octocat", m["github_user"])
	assert.Equal(t, "gitrekt-api", m["service"])
}

func TestC_FallsBackToChiRequestID(t *testing.T) {
	buf := capture(t)

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "chi-7")
	C(ctx).Info().Msg("x")
	assert.Equal(t, "chi-7", lastLine(t, buf)["request_id"])

	C(context.Background()).Info().Msg("y")
	_, ok := lastLine(t, buf)["request_id"]
	assert.False(t, ok)
}

func TestNamed(t *testing.T) {
	buf := capture(t)
	Named("github").Warn().Msg("rate limited")
	assert.Equal(t, "github", lastLine(t, buf)["component"])
	assert.Same(t, Get(), Named(""))
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "gitrekt")
	t.Setenv("LOG_CALLER", "yes")

	assert.Equal(t, Options{Level: "warn", Format: "json", Service: "gitrekt", WithCaller: true}, FromEnv())
}

func TestFrom_KeepsComponentFields(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).With().Str("component", "github").Logger()

	From(WithRequest(context.Background(), "", "octocat"), base).Info().Msg("fetch")
	m := lastLine(t, &buf)
	assert.Equal(t, "github", m["component"])
	assert.Equal(t, "octocat", m["github_user"])
	_, ok := m["request_id"]
	assert.False(t, ok)
}
