package lexicon

import (
	"bytes"
	_ "embed"
)

//go:embed data/syllables.csv
var defaultCSV []byte

// Default builds the lexicon bundled with the binary. It is used when no
// lexicon path is configured.
func Default(opts Options) (*Lexicon, error) {
	return Load(bytes.NewReader(defaultCSV), opts)
}
