// Package strings provides string slice helpers
package strings

import (
	std "strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Contains reports whether sub is within s
func Contains(s, sub string) bool { return std.Contains(s, sub) }

// HasSuffix reports whether s ends with suf
func HasSuffix(s, suf string) bool { return std.HasSuffix(s, suf) }

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /auth or /tenants
// ensures a single leading slash and no trailing slash
// panics if nothing but the root "/" is left after trimming spaces and slashes
func MustPrefix(s string) string {
	s = std.TrimSpace(s)
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// illFormedReplacer sanitizes invalid UTF-8 before rune-counting so Truncate
// never trips over a broken encoding it didn't itself introduce
var illFormedReplacer = runes.ReplaceIllFormed()

// Truncate caps s at maxRunes runes without splitting a multi-byte codepoint.
// s is sanitized of ill-formed UTF-8 first; a non-positive maxRunes yields "".
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	clean, _, err := transform.String(illFormedReplacer, s)
	if err != nil {
		clean = s
	}
	if utf8.RuneCountInString(clean) <= maxRunes {
		return clean
	}
	var b std.Builder
	n := 0
	for _, r := range clean {
		if n == maxRunes {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
