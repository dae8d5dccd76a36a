package github

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
)

// GHStatusError wraps non-2xx HTTP responses from GitHub
// Err carries the perr code so callers can branch with perr.IsCode
type GHStatusError struct {
	Status     int
	Body       string
	RetryAfter time.Duration
	Err        error
}

// Error interface
func (e *GHStatusError) Error() string { return e.Err.Error() }

// Unwrap interface
func (e *GHStatusError) Unwrap() error { return e.Err }

// HTTPStatus interface
func (e *GHStatusError) HTTPStatus() int { return e.Status }

func parseRateHeaders(h http.Header) (remaining int, reset time.Time, retryAfter int) {
	remaining = atoi(h.Get("X-RateLimit-Remaining"), -1)
	if sec := atoi(h.Get("X-RateLimit-Reset"), 0); sec > 0 {
		reset = time.Unix(int64(sec), 0).UTC()
	}
	retryAfter = atoi(h.Get("Retry-After"), 0)
	return
}

// isRateLimit separates primary and secondary rate limits from plain 403s
func isRateLimit(status, remaining, retryAfter int) bool {
	switch status {
	case http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		return remaining == 0 || retryAfter > 0
	}
	return false
}

// computeWait decides how long to wait based on headers
func computeWait(remaining int, reset time.Time, retryAfter int, now time.Time) time.Duration {
	if retryAfter > 0 {
		return time.Duration(retryAfter) * time.Second
	}
	if remaining == 0 && !reset.IsZero() && reset.After(now) {
		return reset.Sub(now)
	}
	return 0
}

func codeForStatus(status int) perr.ErrorCode {
	switch status {
	case http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case http.StatusUnauthorized:
		return perr.ErrorCodeUnauthorized
	case http.StatusForbidden:
		return perr.ErrorCodeForbidden
	case http.StatusConflict:
		return perr.ErrorCodeConflict
	case http.StatusUnprocessableEntity:
		return perr.ErrorCodeInvalidArgument
	}
	if status >= 500 {
		return perr.ErrorCodeUnavailable
	}
	return perr.ErrorCodeUnknown
}

// ctxErr maps context failures onto perr codes, the ctx state wins over err
func ctxErr(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		err = cerr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return perr.FromContext(err, "github request aborted")
	}
	return perr.Wrapf(err, perr.ErrorCodeUnavailable, "github request aborted")
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}

// IsRateLimited reports whether err is a GitHub rate limit
func IsRateLimited(err error) bool {
	return perr.IsCode(err, perr.ErrorCodeTooManyRequests)
}

// RetryAfter returns the wait GitHub asked for, zero when unknown
func RetryAfter(err error) time.Duration {
	var gse *GHStatusError
	if errors.As(err, &gse) {
		return gse.RetryAfter
	}
	return 0
}
