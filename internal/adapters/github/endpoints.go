package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
)

const (
	perPage   = 100
	bodyLimit = 4 << 20
)

// getJSON issues a GET and decodes the body into T
func getJSON[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return out, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("github close body failed")
		}
	}()

	if err := json.NewDecoder(io.LimitReader(resp.Body, bodyLimit)).Decode(&out); err != nil {
		return out, perr.Wrapf(err, perr.ErrorCodeJSON, "github decode %s", path)
	}
	return out, nil
}

// UserByLogin fetches a public profile, a missing user surfaces as ErrorCodeNotFound
func (c *Client) UserByLogin(ctx context.Context, login string) (User, error) {
	u, err := getJSON[User](ctx, c, "/users/"+url.PathEscape(login))
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return User{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "github user %s not found", login)
	}
	return u, err
}

// ListUserRepos pages through every public repository owned by login
func (c *Client) ListUserRepos(ctx context.Context, login string) ([]Repo, error) {
	var all []Repo
	for page := 1; ; page++ {
		path := fmt.Sprintf("/users/%s/repos?type=owner&sort=updated&per_page=%d&page=%d",
			url.PathEscape(login), perPage, page)
		items, err := getJSON[[]Repo](ctx, c, path)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < perPage {
			break
		}
	}
	if all == nil {
		all = []Repo{}
	}
	return all, nil
}

// RepoLanguages fetches the language byte breakdown for a repo
func (c *Client) RepoLanguages(ctx context.Context, owner, name string) (map[string]int64, error) {
	path := fmt.Sprintf("/repos/%s/%s/languages", url.PathEscape(owner), url.PathEscape(name))
	out, err := getJSON[map[string]int64](ctx, c, path)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]int64{}
	}
	return out, nil
}

// Readme returns the decoded README.md content, empty when the file is absent
func (c *Client) Readme(ctx context.Context, owner, name string) (string, error) {
	path := fmt.Sprintf("/repos/%s/%s/contents/README.md", url.PathEscape(owner), url.PathEscape(name))
	doc, err := getJSON[struct {
		Type     string `json:"type"`
		Encoding string `json:"encoding"`
		Content  string `json:"content"`
	}](ctx, c, path)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if doc.Type != "file" || doc.Content == "" {
		return "", nil
	}
	if doc.Encoding != "" && doc.Encoding != "base64" {
		return doc.Content, nil
	}

	// the API wraps base64 at 60 columns
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(doc.Content, "\n", ""))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeJSON, "github readme %s/%s decode", owner, name)
	}
	return string(raw), nil
}

// RecentCommits returns up to limit commit timestamps from the default branch, newest first
// an empty repository answers 409 which is reported as no commits
func (c *Client) RecentCommits(ctx context.Context, owner, name string, limit int) ([]time.Time, error) {
	if limit <= 0 || limit > perPage {
		limit = perPage
	}
	path := fmt.Sprintf("/repos/%s/%s/commits?per_page=%d", url.PathEscape(owner), url.PathEscape(name), limit)
	items, err := getJSON[[]Commit](ctx, c, path)
	if perr.IsCode(err, perr.ErrorCodeConflict) {
		return []time.Time{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(items))
	for _, it := range items {
		out = append(out, it.When())
	}
	return out, nil
}

// CommitHistory combines the recent commit page with the branch total from GraphQL
// the total falls back to the page length when the count cannot be fetched
func (c *Client) CommitHistory(ctx context.Context, owner, name string, limit int) (History, error) {
	commits, err := c.RecentCommits(ctx, owner, name, limit)
	if err != nil {
		return History{}, err
	}
	h := History{Commits: commits, Total: len(commits)}
	if len(commits) == 0 || !c.HasToken() {
		return h, nil
	}

	total, err := c.CommitCount(ctx, owner, name)
	if err != nil {
		c.log.Debug().Err(err).Str("repo", owner+"/"+name).Msg("github commit count unavailable")
		return h, nil
	}
	h.Total = max(total, len(commits))
	return h, nil
}

// RateLimit reads the core REST quota, this call does not count against it
func (c *Client) RateLimit(ctx context.Context) (RateStatus, error) {
	doc, err := getJSON[struct {
		Resources struct {
			Core struct {
				Limit     int   `json:"limit"`
				Remaining int   `json:"remaining"`
				Reset     int64 `json:"reset"`
			} `json:"core"`
		} `json:"resources"`
	}](ctx, c, "/rate_limit")
	if err != nil {
		return RateStatus{}, err
	}
	core := doc.Resources.Core
	return RateStatus{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     time.Unix(core.Reset, 0).UTC(),
	}, nil
}
