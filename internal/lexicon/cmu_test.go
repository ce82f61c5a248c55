package lexicon

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bakabot/internal/domain"
)

func TestCountStressed(t *testing.T) {
	tests := []struct {
		name     string
		phonemes []string
		want     int
	}{
		{"one vowel", []string{"K", "AE1", "T"}, 1},
		{"unstressed and primary", []string{"HH", "AH0", "L", "OW1"}, 2},
		{"secondary stress", []string{"W", "AO1", "T", "ER0", "M", "EH2", "L", "AH0", "N"}, 4},
		{"no vowels", []string{"HH", "M"}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countStressed(tt.phonemes); got != tt.want {
				t.Errorf("countStressed(%v) = %d, want %d", tt.phonemes, got, tt.want)
			}
		})
	}
}

func TestParseCMULine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		want     domain.WordEntry
		wantSkip bool
		wantErr  bool
	}{
		{name: "classic layout", line: "HELLO  HH AH0 L OW1", want: domain.WordEntry{Word: "hello", Syllables: 2}},
		{name: "dict layout", line: "banana B AH0 N AE1 N AH0", want: domain.WordEntry{Word: "banana", Syllables: 3}},
		{name: "trailing comment", line: "cat K AE1 T # noun", want: domain.WordEntry{Word: "cat", Syllables: 1}},
		{name: "apostrophe word", line: "DON'T  D OW1 N T", want: domain.WordEntry{Word: "don't", Syllables: 1}},
		{name: "variant", line: "HELLO(2)  HH EH0 L OW1", wantSkip: true},
		{name: "comment", line: ";;; comment", wantSkip: true},
		{name: "empty", line: "", wantSkip: true},
		{name: "blank", line: "   ", wantSkip: true},
		{name: "no phonemes", line: "LONELY", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCMULine(tt.line)
			switch {
			case tt.wantSkip:
				assert.ErrorIs(t, err, errSkipLine)
			case tt.wantErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, errSkipLine)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseCMU_File(t *testing.T) {
	f, err := os.Open(testdataPath(t, "cmudict-sample.txt"))
	require.NoError(t, err)
	defer f.Close()

	entries, stats, err := ParseCMU(f)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalLines)
	assert.Equal(t, 2, stats.CommentLines)
	assert.Equal(t, 1, stats.VariantLines)
	assert.Equal(t, 6, stats.ParsedLines)

	want := []domain.WordEntry{
		{Word: "cat", Syllables: 1},
		{Word: "hello", Syllables: 2},
		{Word: "banana", Syllables: 3},
		{Word: "watermelon", Syllables: 4},
		{Word: "hippopotamus", Syllables: 5},
		{Word: "individuality", Syllables: 7},
	}
	assert.Equal(t, want, entries)
}

func TestLoadCMU_AppliesCap(t *testing.T) {
	lex, err := LoadFile(testdataPath(t, "cmudict-sample.txt"), FormatCMU, Options{})
	require.NoError(t, err)

	assert.Equal(t, 5, lex.Len())
	_, ok := lex.LookupCount("individuality")
	assert.False(t, ok)
	assert.NoError(t, lex.RequireCoverage())
}

func TestParseCMU_Errors(t *testing.T) {
	_, _, err := ParseCMU(strings.NewReader(";;; only comments\n\n"))
	assert.ErrorIs(t, err, domain.ErrLoad)

	_, _, err = ParseCMU(strings.NewReader("CAT  K AE1 T\nBROKEN\n"))
	require.ErrorIs(t, err, domain.ErrLoad)
	assert.Contains(t, err.Error(), "line 2")
}
