package baka

import (
	"strings"

	"github.com/heartmarshall/bakabot/internal/domain"
)

// Format renders words as "<label>: w1 w2 w3.".
func (s *Service) Format(words []string) string {
	return FormatPhrase(s.ext.Label(), words)
}

// FormatAll renders each candidate on its own line.
func (s *Service) FormatAll(candidates []domain.Candidate) string {
	lines := make([]string, len(candidates))
	for i, c := range candidates {
		lines[i] = s.Format(c.Words)
	}
	return strings.Join(lines, "\n")
}

// FormatPhrase renders words as "<label>: w1 w2 w3.".
func FormatPhrase(label string, words []string) string {
	return label + ": " + strings.Join(words, " ") + "."
}
