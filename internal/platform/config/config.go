// Package config reads prefixed environment variables, bad values log and fall back
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Vagvedi/gitrekt/internal/platform/logger"
)

// Conf is a prefixed view over the environment, like "GITHUB_"
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix returns a child view, prefixes stack
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// may parses key with parse, a blank value is def and a bad one warns then is def
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).Msg("invalid env value, using default")
		return def
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, error) { return s, nil })
}

// MayInt returns the value or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayFloat64 returns the value or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value or def, strconv spellings only
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns the value or def, Go duration syntax like 90s or 24h
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayEnum returns the lower cased value when it is one of allowed, otherwise def
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	return may(c, key, def, func(s string) (string, error) {
		s = strings.ToLower(s)
		for _, a := range allowed {
			if s == strings.ToLower(a) {
				return s, nil
			}
		}
		return "", strconv.ErrSyntax
	})
}
