package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	controlCharRe   = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
	fenceRe         = regexp.MustCompile("(?s)^```(?:json)?\\s*(.+?)\\s*```$")
)

// DecodeLenientJSON decodes hand-edited JSON data files. Besides strict JSON
// it accepts:
// - a UTF-8 byte order mark
// - trailing commas before closing braces/brackets
// - stray control characters
// - the whole document wrapped in a markdown code fence
func DecodeLenientJSON(data []byte, target interface{}) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("empty input")
	}

	// Try direct parsing first (most common case)
	if err := json.Unmarshal(data, target); err == nil {
		return nil
	}

	cleaned := cleanJSON(string(data))
	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("failed to parse JSON from input %q: %w", truncateString(cleaned, 100), err)
	}
	return nil
}

// cleanJSON fixes the formatting issues DecodeLenientJSON tolerates
func cleanJSON(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\ufeff")

	if m := fenceRe.FindStringSubmatch(s); len(m) > 1 {
		s = m[1]
	}

	// Note: this also rewrites ", }" inside string values
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	return controlCharRe.ReplaceAllString(s, "")
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
