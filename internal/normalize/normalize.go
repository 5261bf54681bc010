// Package normalize cleans raw transcript-search queries before entity
// extraction, suggestion matching, and enhancement.
//
// Normalization is deterministic and pure: trim, collapse whitespace runs,
// strip characters outside the allow-list (alphanumeric, space, hyphen,
// underscore). A query that had content never normalizes to the empty string.
package normalize

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a raw query string.
// If stripping disallowed characters would leave nothing, the trimmed
// original is returned unchanged so callers never lose the user's input.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		if allowedRune(r) {
			b.WriteRune(r)
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), " ")
	if cleaned == "" {
		return trimmed
	}
	return cleaned
}

func allowedRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == ' ' || r == '-' || r == '_' ||
		unicode.IsSpace(r)
}
