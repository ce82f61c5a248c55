package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxSyllables is the syllable cap applied to lexicon rows at load time.
const DefaultMaxSyllables = 5

// WordEntry is one row of the lexicon source.
type WordEntry struct {
	Word      string
	Syllables int
}

// Candidate is a word sequence extracted from free text whose syllable sum
// matched the requested target.
type Candidate struct {
	Words     []string
	Syllables int
}

// Text returns the display form of the candidate: words joined by single spaces.
func (c Candidate) Text() string {
	return strings.Join(c.Words, " ")
}

// PhraseMode tells how a phrase was produced.
type PhraseMode string

const (
	// PhraseModeOffline phrases come from the constrained generator.
	PhraseModeOffline PhraseMode = "offline"
	// PhraseModeValidated phrases come from provider text that passed validation.
	PhraseModeValidated PhraseMode = "validated"
)

func (m PhraseMode) String() string { return string(m) }

func (m PhraseMode) IsValid() bool {
	switch m {
	case PhraseModeOffline, PhraseModeValidated:
		return true
	}
	return false
}

// Phrase is a produced phrase as recorded in history.
type Phrase struct {
	ID        uuid.UUID
	Mode      PhraseMode
	Text      string
	Syllables int
	// Attempts is the number of provider calls it took; 0 for offline phrases.
	Attempts  int
	Source    string
	CreatedAt time.Time
}

// PhraseFilter selects history records.
type PhraseFilter struct {
	Mode   *PhraseMode
	Limit  int
	Offset int
}

// PhraseStats aggregates history counts per mode.
type PhraseStats struct {
	Total  int
	ByMode map[PhraseMode]int
}
