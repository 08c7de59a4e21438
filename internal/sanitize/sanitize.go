// Package sanitize bounds and cleans free-text inputs before they are
// embedded into prompts.
package sanitize

import (
	"regexp"
	"strings"
)

// disallowed matches everything outside the allow-list: word characters,
// whitespace, common business punctuation and currency symbols.
var disallowed = regexp.MustCompile("[^\\w\\s\\-.,!?()'\"@#$%&*+/:;<=>\\[\\]^`{|}~€£¥]")

// Clean strips disallowed characters, trims surrounding whitespace and
// truncates the result to max runes. Empty input yields an empty string.
func Clean(text string, max int) string {
	if text == "" || max <= 0 {
		return ""
	}
	cleaned := strings.TrimSpace(disallowed.ReplaceAllString(text, ""))
	if runes := []rune(cleaned); len(runes) > max {
		return string(runes[:max])
	}
	return cleaned
}
