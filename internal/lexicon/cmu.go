package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/bakabot/internal/domain"
)

// errSkipLine signals that a line should be skipped (comment, empty, variant).
var errSkipLine = errors.New("skip line")

// CMUStats holds parser statistics for logging.
type CMUStats struct {
	TotalLines   int
	CommentLines int
	VariantLines int
	ParsedLines  int
}

// LoadCMU builds a Lexicon from a CMU Pronouncing Dictionary source.
func LoadCMU(r io.Reader, opts Options) (*Lexicon, error) {
	entries, _, err := ParseCMU(r)
	if err != nil {
		return nil, err
	}
	return New(entries, opts)
}

// ParseCMU reads CMU dict lines ("WORD  AH0 B AE1 N D" or the lowercase
// single-space cmudict.dict layout). A word's syllable count is the number of
// phonemes carrying a stress marker. Alternate pronunciations such as
// "WORD(2)" are skipped so the primary pronunciation decides the count.
func ParseCMU(r io.Reader) ([]domain.WordEntry, CMUStats, error) {
	var (
		stats   CMUStats
		entries []domain.WordEntry
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.TotalLines++
		line := scanner.Text()

		entry, err := parseCMULine(line)
		if errors.Is(err, errSkipLine) {
			switch {
			case strings.HasPrefix(line, ";;;"):
				stats.CommentLines++
			case strings.Contains(line, "("):
				stats.VariantLines++
			}
			continue
		}
		if err != nil {
			return nil, stats, &domain.LoadError{Line: stats.TotalLines, Reason: err.Error()}
		}

		stats.ParsedLines++
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, &domain.LoadError{Line: stats.TotalLines, Reason: fmt.Sprintf("scanner error: %v", err)}
	}
	if len(entries) == 0 {
		return nil, stats, &domain.LoadError{Reason: "no entries"}
	}
	return entries, stats, nil
}

// parseCMULine parses a single dictionary line into a lowercase word entry.
func parseCMULine(line string) (domain.WordEntry, error) {
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ";;;") {
		return domain.WordEntry{}, errSkipLine
	}

	// Trailing "# comment" annotations appear in newer cmudict releases.
	if idx := strings.IndexByte(line, '#'); idx != -1 {
		line = line[:idx]
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return domain.WordEntry{}, fmt.Errorf("expected word and phonemes, got %q", line)
	}

	if strings.HasSuffix(fields[0], ")") && strings.IndexByte(fields[0], '(') > 0 {
		return domain.WordEntry{}, errSkipLine
	}

	return domain.WordEntry{
		Word:      domain.NormalizeWord(fields[0]),
		Syllables: countStressed(fields[1:]),
	}, nil
}

// countStressed counts phonemes ending in a stress marker (0, 1, 2).
// In ARPAbet only vowels carry stress, so this is the syllable count.
func countStressed(phonemes []string) int {
	n := 0
	for _, p := range phonemes {
		if p == "" {
			continue
		}
		switch p[len(p)-1] {
		case '0', '1', '2':
			n++
		}
	}
	return n
}
