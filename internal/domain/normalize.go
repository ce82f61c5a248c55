package domain

import (
	"strings"
)

// NormalizeWord prepares a single word for lexicon lookup:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//
// Inner punctuation (hyphens, apostrophes) is preserved, so "don't" and
// "dont" are different keys.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
