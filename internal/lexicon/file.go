package lexicon

import (
	"fmt"
	"os"
)

// Source formats accepted by LoadFile.
const (
	FormatCSV = "csv"
	FormatCMU = "cmu"
)

// LoadFile opens path and loads it in the given format ("csv" or "cmu").
func LoadFile(path, format string, opts Options) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatCSV, "":
		return Load(f, opts)
	case FormatCMU:
		return LoadCMU(f, opts)
	default:
		return nil, fmt.Errorf("lexicon: unknown format %q", format)
	}
}
