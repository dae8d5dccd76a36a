// Package repo provides the roast report cache backends
package repo

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
)

// DefaultTTL is how long a report stays fresh
const DefaultTTL = time.Hour

// Cache stores finished reports keyed by Key(username)
// a miss is (zero, false, nil), errors are reserved for backend failures
type Cache interface {
	Get(ctx context.Context, key string) (roast.Report, bool, error)
	Set(ctx context.Context, key string, r roast.Report) error
	Ping(ctx context.Context) error
}

var fold = cases.Fold()

// Key derives the cache key for a username, GitHub logins are case insensitive
func Key(username string) string {
	return "roast:" + fold.String(strings.TrimSpace(username))
}
