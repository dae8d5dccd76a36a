// Package strings holds the small string helpers shared by modules and rules
package strings

import (
	"strconv"
	std "strings"
)

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount path like "meta/" into "/meta"
// an empty or root prefix panics, modules mounting at the api root check for that first
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Plural returns "1 repo" or "3 repos", words ending in a consonant y take ies
func Plural(n int, word string) string {
	if n == 1 || word == "" {
		return strconv.Itoa(n) + " " + word
	}
	if std.HasSuffix(word, "y") && !std.HasSuffix(word, "ay") && !std.HasSuffix(word, "ey") {
		return strconv.Itoa(n) + " " + word[:len(word)-1] + "ies"
	}
	return strconv.Itoa(n) + " " + word + "s"
}
