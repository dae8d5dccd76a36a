package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	perr "github.com/Vagvedi/gitrekt/internal/platform/errors"
)

const commitCountQuery = `query($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    defaultBranchRef {
      target {
        ... on Commit {
          history { totalCount }
        }
      }
    }
  }
}`

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type commitCountData struct {
	Repository *struct {
		DefaultBranchRef *struct {
			Target struct {
				History *struct {
					TotalCount int `json:"totalCount"`
				} `json:"history"`
			} `json:"target"`
		} `json:"defaultBranchRef"`
	} `json:"repository"`
}

// CommitCount returns the total commits on the default branch via GraphQL
// GraphQL requires a token, tokenless clients get ErrorCodeUnauthorized without a round trip
func (c *Client) CommitCount(ctx context.Context, owner, name string) (int, error) {
	if !c.HasToken() {
		return 0, perr.Unauthorizedf("github graphql requires a token")
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.GraphQLTimeout)
	defer cancel()

	body, err := json.Marshal(gqlRequest{
		Query:     commitCountQuery,
		Variables: map[string]any{"owner": owner, "name": name},
	})
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeJSON, "github graphql encode")
	}

	resp, err := c.do(ctx, http.MethodPost, c.opts.GraphQLURL, body)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("github close graphql body failed")
		}
	}()

	var out struct {
		Data   commitCountData `json:"data"`
		Errors []gqlError      `json:"errors"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, bodyLimit)).Decode(&out); err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeJSON, "github graphql decode")
	}
	if len(out.Errors) > 0 {
		code := perr.ErrorCodeUnknown
		if out.Errors[0].Type == "NOT_FOUND" {
			code = perr.ErrorCodeNotFound
		}
		return 0, perr.Newf(code, "github graphql: %s", out.Errors[0].Message)
	}

	repo := out.Data.Repository
	if repo == nil || repo.DefaultBranchRef == nil || repo.DefaultBranchRef.Target.History == nil {
		return 0, nil
	}
	return repo.DefaultBranchRef.Target.History.TotalCount, nil
}
