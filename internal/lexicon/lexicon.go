// Package lexicon builds the immutable word/syllable index that the
// generator and the extractor share. A Lexicon is constructed once at
// startup and is safe for concurrent readers without locking.
package lexicon

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"

	"github.com/zeebo/blake3"

	"github.com/heartmarshall/bakabot/internal/domain"
)

// DuplicatePolicy decides what happens when the source lists the same word
// (case-insensitively) more than once.
type DuplicatePolicy string

const (
	// DuplicateKeepFirst keeps the first row and skips later ones in both indices.
	DuplicateKeepFirst DuplicatePolicy = "first"
	// DuplicateKeepLast lets the last row replace earlier ones in both indices.
	DuplicateKeepLast DuplicatePolicy = "last"
	// DuplicateReject fails the load.
	DuplicateReject DuplicatePolicy = "reject"
)

func (p DuplicatePolicy) IsValid() bool {
	switch p {
	case DuplicateKeepFirst, DuplicateKeepLast, DuplicateReject:
		return true
	}
	return false
}

// Options controls how rows become a Lexicon.
type Options struct {
	// MaxSyllables drops rows above the cap. Zero means domain.DefaultMaxSyllables.
	MaxSyllables int
	// Duplicates defaults to DuplicateKeepFirst.
	Duplicates DuplicatePolicy
}

func (o Options) withDefaults() Options {
	if o.MaxSyllables <= 0 {
		o.MaxSyllables = domain.DefaultMaxSyllables
	}
	if o.Duplicates == "" {
		o.Duplicates = DuplicateKeepFirst
	}
	return o
}

// Stats describes what happened during construction.
type Stats struct {
	Rows       int         // rows offered to New
	Entries    int         // rows kept in the index
	OverCap    int         // rows dropped for exceeding MaxSyllables
	Duplicates int         // rows dropped or replaced by the duplicate policy
	Buckets    map[int]int // syllable count -> number of words
}

// Lexicon is the read-only index: count -> words and word -> count.
type Lexicon struct {
	maxSyllables int
	countToWords map[int][]string
	wordToCount  map[string]int
	stats        Stats
	fingerprint  string
}

// New indexes entries in order. Rows with more than MaxSyllables syllables are
// dropped before duplicate detection, so they never appear in either index.
// Words with zero syllables are kept for lookup but never drawn by the generator.
func New(entries []domain.WordEntry, opts Options) (*Lexicon, error) {
	opts = opts.withDefaults()
	if !opts.Duplicates.IsValid() {
		return nil, fmt.Errorf("lexicon: unknown duplicate policy %q", opts.Duplicates)
	}

	stats := Stats{Rows: len(entries), Buckets: make(map[int]int)}

	// winner maps a normalized word to the index of the row that owns it.
	winner := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.Syllables < 0 {
			return nil, &domain.LoadError{Reason: fmt.Sprintf("word %q has negative syllable count %d", e.Word, e.Syllables)}
		}
		if e.Syllables > opts.MaxSyllables {
			stats.OverCap++
			continue
		}
		key := domain.NormalizeWord(e.Word)
		if key == "" {
			return nil, &domain.LoadError{Reason: fmt.Sprintf("row %d has an empty word", i+1)}
		}
		if _, seen := winner[key]; seen {
			stats.Duplicates++
			switch opts.Duplicates {
			case DuplicateReject:
				return nil, &domain.LoadError{Reason: fmt.Sprintf("duplicate word %q", e.Word)}
			case DuplicateKeepFirst:
				continue
			}
		}
		winner[key] = i
	}

	lex := &Lexicon{
		maxSyllables: opts.MaxSyllables,
		countToWords: make(map[int][]string),
		wordToCount:  make(map[string]int, len(winner)),
	}

	h := blake3.New()
	for i, e := range entries {
		key := domain.NormalizeWord(e.Word)
		if idx, ok := winner[key]; !ok || idx != i {
			continue
		}
		word := trimWord(e.Word)
		lex.wordToCount[key] = e.Syllables
		if e.Syllables > 0 {
			lex.countToWords[e.Syllables] = append(lex.countToWords[e.Syllables], word)
			stats.Buckets[e.Syllables]++
		}
		stats.Entries++

		h.Write([]byte(key))
		h.Write([]byte{'\t'})
		h.Write([]byte(strconv.Itoa(e.Syllables)))
		h.Write([]byte{'\n'})
	}

	for n, words := range lex.countToWords {
		lex.countToWords[n] = slices.Clip(words)
	}

	lex.stats = stats
	lex.fingerprint = hex.EncodeToString(h.Sum(nil))
	return lex, nil
}

// LookupCount returns the syllable count of word, case-insensitively.
func (l *Lexicon) LookupCount(word string) (int, bool) {
	n, ok := l.wordToCount[domain.NormalizeWord(word)]
	return n, ok
}

// WordsForCount returns the words with exactly n syllables, in load order and
// with their source casing. The returned slice is shared and must not be modified.
func (l *Lexicon) WordsForCount(n int) ([]string, error) {
	words := l.countToWords[n]
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrNoWordsForCount, n)
	}
	return words, nil
}

// HasCount reports whether at least one word has exactly n syllables.
func (l *Lexicon) HasCount(n int) bool {
	return len(l.countToWords[n]) > 0
}

// Missing returns the syllable counts in [1, upTo] that have no words.
func (l *Lexicon) Missing(upTo int) []int {
	var missing []int
	for n := 1; n <= upTo; n++ {
		if !l.HasCount(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// RequireCoverage fails with domain.ErrCoverage unless every count in
// [1, MaxSyllables] has at least one word.
func (l *Lexicon) RequireCoverage() error {
	if missing := l.Missing(l.maxSyllables); len(missing) > 0 {
		return fmt.Errorf("%w: no words for syllable counts %v", domain.ErrCoverage, missing)
	}
	return nil
}

// MaxSyllables returns the cap applied at load time.
func (l *Lexicon) MaxSyllables() int { return l.maxSyllables }

// Len returns the number of distinct words.
func (l *Lexicon) Len() int { return len(l.wordToCount) }

// Stats returns construction statistics.
func (l *Lexicon) Stats() Stats {
	s := l.stats
	s.Buckets = make(map[int]int, len(l.stats.Buckets))
	for k, v := range l.stats.Buckets {
		s.Buckets[k] = v
	}
	return s
}

// Fingerprint is a hex BLAKE3 digest of the indexed entries. Two lexicons
// with the same words and counts in the same order share a fingerprint.
func (l *Lexicon) Fingerprint() string { return l.fingerprint }
