// Package stringutil provides common string manipulation utilities.
package stringutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// Normalize canonicalizes a user query for matching: fullwidth characters
// are folded to their halfwidth forms (１→1, ？→?), letters are lowercased,
// and surrounding whitespace is trimmed.
//
// Example:
//
//	Normalize("　Ｍain Building ") returns "main building"
func Normalize(s string) string {
	folded := width.Fold.String(s)
	return strings.TrimSpace(strings.ToLower(folded))
}

// ContainsDigit reports whether s contains any decimal digit.
// Fullwidth digits count after folding.
func ContainsDigit(s string) bool {
	for _, r := range width.Fold.String(s) {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// StripPunctuation removes punctuation and symbol runes from s.
// Used to derive a secondary search keyword from a raw query
// ("哪里可以停车？" → "哪里可以停车").
func StripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// IsNumeric checks if a string contains only digits.
// Returns false for empty strings.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RuneLen returns the number of runes in s. Length thresholds on user
// queries are rune counts, not byte counts, so CJK input is measured
// the same as ASCII.
func RuneLen(s string) int {
	return len([]rune(s))
}
