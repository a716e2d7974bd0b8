// Package errfmt provides shared error formatting for agent backends.
package errfmt

import (
	"strings"
	"unicode/utf8"
)

// MaxLen caps error content to prevent unbounded propagation.
const MaxLen = 4096

// truncateUTF8 caps s at max bytes, backtracking to a valid UTF-8 boundary.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	end := limit
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}

// Truncate caps a string at MaxLen bytes with UTF-8-safe truncation.
func Truncate(s string) string {
	return truncateUTF8(s, MaxLen)
}

// Diagnostic returns s without surrounding whitespace, capped at MaxLen.
// Returns fallback when s is blank.
func Diagnostic(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return Truncate(s)
}
