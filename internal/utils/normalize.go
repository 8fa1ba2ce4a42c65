package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes free text before any matching: NFKC composition,
// Unicode case folding and surrounding whitespace trim. It is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	s := norm.NFKC.String(text)
	// cases.Caser keeps state, so one per call.
	s = cases.Fold().String(s)
	s = norm.NFKC.String(s)
	return strings.TrimSpace(s)
}

// RuneLen returns the number of characters in s
func RuneLen(s string) int {
	return len([]rune(s))
}
