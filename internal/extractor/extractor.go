// Package extractor finds labelled phrases in free text and keeps the ones
// whose syllable counts sum exactly to a target.
//
// Grammar, applied left to right without overlap:
//
//	match  = LABEL ": " phrase "."
//	phrase = 1*( any character except "." )
//
// LABEL is a case-sensitive literal. A phrase runs up to the first period
// after the label. It is split on single spaces and every token is trimmed;
// an empty token (from doubled spaces) is an unknown word.
package extractor

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/bakabot/internal/domain"
)

// DefaultLabel is the label used by the bot.
const DefaultLabel = "Baka"

// Lookup resolves a word to its syllable count, case-insensitively.
type Lookup interface {
	LookupCount(word string) (int, bool)
}

// Match is one labelled phrase found in text, before target filtering.
type Match struct {
	Words []string
	// Syllables is the sum over Words; meaningless when Unknown is non-empty.
	Syllables int
	// Unknown lists tokens that are not in the lexicon.
	Unknown []string
}

// Known reports whether every token was found in the lexicon.
func (m Match) Known() bool { return len(m.Unknown) == 0 }

// Extractor is pure and safe for concurrent use.
type Extractor struct {
	words   Lookup
	label   string
	pattern *regexp.Regexp
}

// New creates an Extractor for phrases introduced by label.
// An empty label means DefaultLabel.
func New(words Lookup, label string) *Extractor {
	if label == "" {
		label = DefaultLabel
	}
	return &Extractor{
		words:   words,
		label:   label,
		pattern: regexp.MustCompile(regexp.QuoteMeta(label) + `: ([^.]+)\.`),
	}
}

// Label returns the literal that introduces a phrase.
func (e *Extractor) Label() string { return e.label }

// Scan returns every labelled phrase in text in order of appearance.
func (e *Extractor) Scan(text string) []Match {
	subs := e.pattern.FindAllStringSubmatch(text, -1)
	if len(subs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(subs))
	for _, sub := range subs {
		matches = append(matches, e.measure(sub[1]))
	}
	return matches
}

// Extract returns the phrases in text whose words are all known and whose
// syllables sum exactly to target, in order of appearance.
func (e *Extractor) Extract(text string, target int) []domain.Candidate {
	var out []domain.Candidate
	for _, m := range e.Scan(text) {
		if !m.Known() || m.Syllables != target {
			continue
		}
		out = append(out, domain.Candidate{Words: m.Words, Syllables: m.Syllables})
	}
	return out
}

func (e *Extractor) measure(phrase string) Match {
	tokens := strings.Split(phrase, " ")
	m := Match{Words: make([]string, len(tokens))}
	for i, tok := range tokens {
		word := strings.TrimSpace(tok)
		m.Words[i] = word

		n, ok := e.words.LookupCount(word)
		if !ok || word == "" {
			m.Unknown = append(m.Unknown, word)
			continue
		}
		m.Syllables += n
	}
	return m
}
