package lexicon

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bakabot/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func mustLoad(t *testing.T, src string, opts Options) *Lexicon {
	t.Helper()
	lex, err := Load(strings.NewReader(src), opts)
	require.NoError(t, err)
	return lex
}

// ---------------------------------------------------------------------------
// Load / ParseCSV
// ---------------------------------------------------------------------------

func TestLoad_BuildsBothIndices(t *testing.T) {
	t.Parallel()

	lex := mustLoad(t, "word,syllables\ncat,1\nDog,1\nhello,2\n", Options{})

	n, ok := lex.LookupCount("cat")
	require.True(t, ok)
	assert.Equal(t, 1, n)

	words, err := lex.WordsForCount(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "Dog"}, words, "load order and source casing are kept")

	words, err = lex.WordsForCount(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, words)

	assert.Equal(t, 3, lex.Len())
}

func TestLoad_CapFiltering(t *testing.T) {
	t.Parallel()

	src := "word,syllables\ncat,1\nopportunity,5\nresponsibility,6\n"
	lex := mustLoad(t, src, Options{MaxSyllables: 5})

	_, ok := lex.LookupCount("responsibility")
	assert.False(t, ok, "over-cap word must not be in wordToCount")
	_, err := lex.WordsForCount(6)
	assert.ErrorIs(t, err, domain.ErrNoWordsForCount, "over-cap word must not be in countToWords")

	n, ok := lex.LookupCount("opportunity")
	require.True(t, ok, "word exactly at the cap is kept")
	assert.Equal(t, 5, n)
	words, err := lex.WordsForCount(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"opportunity"}, words)

	assert.Equal(t, 1, lex.Stats().OverCap)
}

func TestLoad_HeaderColumnsByName(t *testing.T) {
	t.Parallel()

	lex := mustLoad(t, "Syllables,freq,Word\n2,10,hello\n", Options{})
	n, ok := lex.LookupCount("hello")
	require.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantLine int
	}{
		{name: "empty source", src: "", wantLine: 0},
		{name: "header only", src: "word,syllables\n", wantLine: 0},
		{name: "missing column", src: "word,count\ncat,1\n", wantLine: 1},
		{name: "non-numeric count", src: "word,syllables\ncat,1\ndog,two\n", wantLine: 3},
		{name: "negative count", src: "word,syllables\ncat,-1\n", wantLine: 2},
		{name: "short row", src: "word,syllables\ncat\n", wantLine: 2},
		{name: "empty word", src: "word,syllables\n ,1\n", wantLine: 2},
		{name: "bad quoting", src: "word,syllables\n\"cat,1\n", wantLine: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(strings.NewReader(tt.src), Options{})
			require.ErrorIs(t, err, domain.ErrLoad)

			var le *domain.LoadError
			require.True(t, errors.As(err, &le))
			if tt.wantLine >= 0 {
				assert.Equal(t, tt.wantLine, le.Line)
			}
		})
	}
}

func TestLoad_ZeroSyllableWordIsLookupOnly(t *testing.T) {
	t.Parallel()

	lex := mustLoad(t, "word,syllables\nhmm,0\ncat,1\n", Options{})

	n, ok := lex.LookupCount("hmm")
	require.True(t, ok)
	assert.Equal(t, 0, n)
	_, err := lex.WordsForCount(0)
	assert.ErrorIs(t, err, domain.ErrNoWordsForCount)
}

// ---------------------------------------------------------------------------
// Duplicate policy
// ---------------------------------------------------------------------------

func TestNew_DuplicatePolicies(t *testing.T) {
	t.Parallel()

	entries := []domain.WordEntry{
		{Word: "polish", Syllables: 2},
		{Word: "cat", Syllables: 1},
		{Word: "Polish", Syllables: 3},
	}

	t.Run("keep first", func(t *testing.T) {
		t.Parallel()
		lex, err := New(entries, Options{Duplicates: DuplicateKeepFirst})
		require.NoError(t, err)

		n, _ := lex.LookupCount("POLISH")
		assert.Equal(t, 2, n)
		assert.False(t, lex.HasCount(3), "skipped duplicate must not reach countToWords")
		assert.Equal(t, 1, lex.Stats().Duplicates)
	})

	t.Run("keep last", func(t *testing.T) {
		t.Parallel()
		lex, err := New(entries, Options{Duplicates: DuplicateKeepLast})
		require.NoError(t, err)

		n, _ := lex.LookupCount("polish")
		assert.Equal(t, 3, n)
		words, err := lex.WordsForCount(3)
		require.NoError(t, err)
		assert.Equal(t, []string{"Polish"}, words)
		assert.False(t, lex.HasCount(2), "replaced row must leave countToWords")
	})

	t.Run("reject", func(t *testing.T) {
		t.Parallel()
		_, err := New(entries, Options{Duplicates: DuplicateReject})
		assert.ErrorIs(t, err, domain.ErrLoad)
	})

	t.Run("unknown policy", func(t *testing.T) {
		t.Parallel()
		_, err := New(entries, Options{Duplicates: "newest"})
		assert.Error(t, err)
	})
}

func TestNew_OverCapDuplicateDoesNotCount(t *testing.T) {
	t.Parallel()

	lex, err := New([]domain.WordEntry{
		{Word: "word", Syllables: 9},
		{Word: "word", Syllables: 1},
	}, Options{Duplicates: DuplicateReject})
	require.NoError(t, err)

	n, ok := lex.LookupCount("word")
	require.True(t, ok)
	assert.Equal(t, 1, n)
}

// ---------------------------------------------------------------------------
// Coverage, stats, fingerprint
// ---------------------------------------------------------------------------

func TestCoverage(t *testing.T) {
	t.Parallel()

	lex := mustLoad(t, "word,syllables\ncat,1\nbanana,3\n", Options{MaxSyllables: 4})

	assert.Equal(t, []int{2, 4}, lex.Missing(4))
	err := lex.RequireCoverage()
	require.ErrorIs(t, err, domain.ErrCoverage)
	assert.Contains(t, err.Error(), "[2 4]")

	full := mustLoad(t, "word,syllables\na,1\nhello,2\n", Options{MaxSyllables: 2})
	assert.NoError(t, full.RequireCoverage())
}

func TestStats_ReturnsCopy(t *testing.T) {
	t.Parallel()

	lex := mustLoad(t, "word,syllables\ncat,1\ndog,1\nhello,2\n", Options{})

	s := lex.Stats()
	assert.Equal(t, 3, s.Rows)
	assert.Equal(t, 3, s.Entries)
	assert.Equal(t, map[int]int{1: 2, 2: 1}, s.Buckets)

	s.Buckets[1] = 100
	assert.Equal(t, 2, lex.Stats().Buckets[1])
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := mustLoad(t, "word,syllables\ncat,1\nhello,2\n", Options{})
	b := mustLoad(t, "word,syllables,extra\nCat,1,x\nhello,2,y\n", Options{})
	c := mustLoad(t, "word,syllables\ncat,1\nhello,3\n", Options{})

	assert.Len(t, a.Fingerprint(), 64)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "casing and extra columns do not change the digest")
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

// ---------------------------------------------------------------------------
// Files and bundled data
// ---------------------------------------------------------------------------

func TestLoadFile_CSV(t *testing.T) {
	t.Parallel()

	lex, err := LoadFile(testdataPath(t, "small.csv"), FormatCSV, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, lex.Len())
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(testdataPath(t, "missing.csv"), FormatCSV, Options{})
	assert.Error(t, err)

	_, err = LoadFile(testdataPath(t, "small.csv"), "xml", Options{})
	assert.ErrorContains(t, err, "unknown format")
}

func TestDefault_CoversAllCounts(t *testing.T) {
	t.Parallel()

	lex, err := Default(Options{})
	require.NoError(t, err)
	require.NoError(t, lex.RequireCoverage())

	_, ok := lex.LookupCount("responsibility")
	assert.False(t, ok, "six-syllable word is above the default cap")
	n, ok := lex.LookupCount("Baka")
	require.True(t, ok)
	assert.Equal(t, 2, n)
}
