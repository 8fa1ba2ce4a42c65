package utils

import (
	"strings"
)

// KeywordRule maps a trigger keyword to a value. Rule chains are slices so
// that evaluation order is fixed: the first rule whose keyword occurs wins.
type KeywordRule[T any] struct {
	Keyword string
	Value   T
}

// FirstMatch returns the value of the first rule whose keyword is a substring of text
func FirstMatch[T any](text string, rules []KeywordRule[T]) (T, bool) {
	for _, rule := range rules {
		if strings.Contains(text, rule.Keyword) {
			return rule.Value, true
		}
	}
	var zero T
	return zero, false
}

// Keywords lists the trigger keywords of a rule chain in order
func Keywords[T any](rules []KeywordRule[T]) []string {
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		out = append(out, rule.Keyword)
	}
	return out
}

// ContainsAny reports whether any keyword is a substring of text
func ContainsAny(text string, keywords []string) bool {
	_, ok := MatchedKeyword(text, keywords)
	return ok
}

// MatchedKeyword returns the first keyword that is a substring of text
func MatchedKeyword(text string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(text, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// AfterMarker returns the text following the last occurrence of the first
// marker found in text. Markers are tried in order.
func AfterMarker(text string, markers []string) (string, bool) {
	for _, marker := range markers {
		if idx := strings.LastIndex(text, marker); idx >= 0 {
			return text[idx+len(marker):], true
		}
	}
	return "", false
}
