package lexicon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/heartmarshall/bakabot/internal/domain"
)

const (
	columnWord      = "word"
	columnSyllables = "syllables"
)

// Load reads a CSV source with a header row naming at least the "word" and
// "syllables" columns (any order, case-insensitive; extra columns ignored)
// and builds a Lexicon from it.
//
// A missing header, an unparsable row or a source without data rows fails
// with a *domain.LoadError.
func Load(r io.Reader, opts Options) (*Lexicon, error) {
	entries, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	return New(entries, opts)
}

// ParseCSV reads the raw rows of a CSV source without applying any filtering.
func ParseCSV(r io.Reader) ([]domain.WordEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validated per row below
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.LoadError{Reason: "empty source"}
		}
		return nil, &domain.LoadError{Line: 1, Reason: fmt.Sprintf("read header: %v", err)}
	}

	wordIdx, sylIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case columnWord:
			wordIdx = i
		case columnSyllables:
			sylIdx = i
		}
	}
	if wordIdx == -1 || sylIdx == -1 {
		return nil, &domain.LoadError{Line: 1, Reason: fmt.Sprintf("header must contain %q and %q columns", columnWord, columnSyllables)}
	}

	var entries []domain.WordEntry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			line := 0
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &domain.LoadError{Line: line, Reason: fmt.Sprintf("read row: %v", err)}
		}
		line, _ := reader.FieldPos(0)

		if wordIdx >= len(record) || sylIdx >= len(record) {
			return nil, &domain.LoadError{Line: line, Reason: fmt.Sprintf("expected at least %d columns, got %d", max(wordIdx, sylIdx)+1, len(record))}
		}

		word := trimWord(record[wordIdx])
		if word == "" {
			return nil, &domain.LoadError{Line: line, Reason: "empty word"}
		}

		syllables, err := strconv.ParseUint(strings.TrimSpace(record[sylIdx]), 10, 31)
		if err != nil {
			return nil, &domain.LoadError{Line: line, Reason: fmt.Sprintf("invalid syllable count %q for %q", record[sylIdx], word)}
		}

		entries = append(entries, domain.WordEntry{Word: word, Syllables: int(syllables)})
	}

	if len(entries) == 0 {
		return nil, &domain.LoadError{Reason: "no entries"}
	}
	return entries, nil
}

func trimWord(s string) string {
	return strings.TrimSpace(s)
}
