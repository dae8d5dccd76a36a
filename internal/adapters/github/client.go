// Package github provides a resilient GitHub REST v3 and GraphQL client used to gather roast inputs
package github

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
	"github.com/Vagvedi/gitrekt/internal/platform/logger"
)

const (
	baseURLDefault     = "https://api.github.com"
	defaultTimeout     = 10 * time.Second
	defaultGQLTimeout  = 10 * time.Second
	defaultUA          = "gitrekt"
	defaultMaxRetry    = 3
	defaultRetryBase   = 500 * time.Millisecond
	defaultMaxRateWait = 30 * time.Second
	maxBackoff         = 30 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL    string
	GraphQLURL string // defaults to BaseURL + "/graphql"
	UserAgent  string
	Timeout    time.Duration

	// GraphQLTimeout bounds the commit count query which is best effort
	GraphQLTimeout time.Duration

	// Comma separated tokens passed in from CLI or config
	// Empty means tokenless which is very low quota and disables GraphQL counts
	TokensCSV string

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration

	// MaxRateWait is the longest we sleep for a rate limit reset before giving up
	MaxRateWait time.Duration

	// RatePerSec and Burst pace outgoing requests, zero disables pacing
	RatePerSec float64
	Burst      int
}

// Client is a minimal GitHub client with token rotation, pacing and retries
type Client struct {
	http    *http.Client
	opts    Options
	tokens  []string
	cur     atomic.Int32
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.GraphQLURL == "" {
		o.GraphQLURL = o.BaseURL + "/graphql"
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.GraphQLTimeout <= 0 {
		o.GraphQLTimeout = defaultGQLTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.MaxRateWait <= 0 {
		o.MaxRateWait = defaultMaxRateWait
	}

	lim := rate.NewLimiter(rate.Inf, 0)
	if o.RatePerSec > 0 {
		lim = rate.NewLimiter(rate.Limit(o.RatePerSec), max(1, o.Burst))
	}

	var toks []string
	if s := strings.TrimSpace(o.TokensCSV); s != "" {
		for t := range strings.SplitSeq(s, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				toks = append(toks, t)
			}
		}
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		tokens:  toks,
		limiter: lim,
		log:     *logger.Named("github"),
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

// HasToken reports whether at least one token is configured
func (c *Client) HasToken() bool { return len(c.tokens) > 0 }

// getToken returns the next token in a round robin rotation
func (c *Client) getToken() string {
	n := int(c.cur.Add(1))
	if len(c.tokens) == 0 {
		return ""
	}
	return c.tokens[n%len(c.tokens)]
}

// Do issues a REST request against BaseURL with auth headers, pacing, retries and rate limit handling
// the caller owns the returned body
func (c *Client) Do(ctx context.Context, method, path string) (*http.Response, error) {
	return c.do(ctx, method, c.opts.BaseURL+path, nil)
}

// outcome is one round trip, wait > 0 asks for another attempt after sleeping
type outcome struct {
	resp *http.Response
	err  error
	wait time.Duration
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	log := logger.From(ctx, c.log)
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, ctxErr(ctx, err)
		}
		o := c.roundTrip(ctx, log, method, url, body, attempt)
		if o.wait <= 0 || attempt >= c.opts.MaxRetries {
			return o.resp, o.err
		}
		log.Warn().Err(o.err).Dur("retry_in", o.wait).Int("attempt", attempt).Msg("github request retrying")
		if err := c.sleep(ctx, o.wait); err != nil {
			return nil, ctxErr(ctx, err)
		}
	}
}

func (c *Client) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "github request %s %s", method, url)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.getToken(); tok != "" {
		req.Header.Set("Authorization", "token "+tok)
	}
	return req, nil
}

func (c *Client) roundTrip(ctx context.Context, log *logger.Logger, method, url string, body []byte, attempt int) outcome {
	req, err := c.newRequest(ctx, method, url, body)
	if err != nil {
		return outcome{err: err}
	}
	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return outcome{err: ctxErr(ctx, ctx.Err())}
		}
		return outcome{err: perr.Wrapf(err, perr.ErrorCodeUnavailable, "github transport failed"), wait: c.backoff(attempt)}
	}

	rem, reset, retryAfter := parseRateHeaders(resp.Header)
	log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("attempt", attempt).
		Dur("latency", c.now().Sub(start)).
		Int("rate_remaining", rem).
		Msg("github response")

	switch code := resp.StatusCode; {
	case code >= 200 && code < 300:
		return outcome{resp: resp}
	case isRateLimit(code, rem, retryAfter):
		_ = drainAndClose(resp.Body)
		wait := computeWait(rem, reset, retryAfter, c.now())
		if wait <= 0 {
			wait = c.backoff(attempt)
		}
		o := outcome{err: &GHStatusError{
			Status:     code,
			RetryAfter: wait,
			Err:        perr.Newf(perr.ErrorCodeTooManyRequests, "github rate limited"),
		}}
		// a reset further out than MaxRateWait is surfaced to the caller instead
		if wait <= c.opts.MaxRateWait {
			o.wait = wait
		}
		return o
	case code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout:
		_ = drainAndClose(resp.Body)
		return outcome{
			err:  &GHStatusError{Status: code, Err: perr.Newf(perr.ErrorCodeUnavailable, "github upstream %d", code)},
			wait: c.backoff(attempt),
		}
	}

	tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = resp.Body.Close()
	return outcome{err: &GHStatusError{
		Status: resp.StatusCode,
		Body:   string(tail),
		Err:    perr.Newf(codeForStatus(resp.StatusCode), "github unexpected status %d", resp.StatusCode),
	}}
}

// backoff doubles RetryBase per attempt up to maxBackoff
func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
