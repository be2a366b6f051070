package abbrev

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `Journal of Biological Science = J. Sci. Biol.
Physical Review Letters = Phys. Rev. Lett.


Nature Communications   =   Nat. Commun.
`

func TestLoad_Forward(t *testing.T) {
	tbl, err := Load(strings.NewReader(sampleTable), Forward)
	require.NoError(t, err)

	assert.Equal(t, Forward, tbl.Direction())
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{
		"journal of biological science",
		"nature communications",
		"physical review letters",
	}, tbl.Keys())

	v, ok := tbl.Lookup("journal of biological science")
	require.True(t, ok)
	assert.Equal(t, "J. Sci. Biol.", v)

	v, ok = tbl.Lookup("nature communications")
	require.True(t, ok)
	assert.Equal(t, "Nat. Commun.", v)

	// Keys are stored lower-cased, lookup does not fold case
	_, ok = tbl.Lookup("Journal of Biological Science")
	assert.False(t, ok)

	_, ok = tbl.Lookup("unknown periodical")
	assert.False(t, ok)
}

func TestLoad_Reverse(t *testing.T) {
	tbl, err := Load(strings.NewReader(sampleTable), Reverse)
	require.NoError(t, err)

	assert.Equal(t, Reverse, tbl.Direction())

	v, ok := tbl.Lookup("j. sci. biol.")
	require.True(t, ok)
	assert.Equal(t, "Journal of Biological Science", v)

	v, ok = tbl.Lookup("phys. rev. lett.")
	require.True(t, ok)
	assert.Equal(t, "Physical Review Letters", v)
}

func TestLoad_DirectionsRoundTrip(t *testing.T) {
	fwd, err := Load(strings.NewReader(sampleTable), Forward)
	require.NoError(t, err)
	rev, err := Load(strings.NewReader(sampleTable), Reverse)
	require.NoError(t, err)

	revKeys := make(map[string]bool)
	for _, k := range rev.Keys() {
		revKeys[k] = true
	}

	for _, k := range fwd.Keys() {
		assert.False(t, revKeys[k], "key %q present in both directions", k)

		abbrev, ok := fwd.Lookup(k)
		require.True(t, ok)

		full, ok := rev.Lookup(strings.ToLower(abbrev))
		require.True(t, ok, "abbreviation %q missing from reverse table", abbrev)
		assert.Equal(t, k, strings.ToLower(full))
	}
}

func TestLoad_SelfAbbreviatedNameSharesKey(t *testing.T) {
	src := "Science = Science\n"

	fwd, err := Load(strings.NewReader(src), Forward)
	require.NoError(t, err)
	rev, err := Load(strings.NewReader(src), Reverse)
	require.NoError(t, err)

	assert.Equal(t, fwd.Keys(), rev.Keys())
}

func TestLoad_DuplicateKeyLastWins(t *testing.T) {
	src := `Journal of Things = J. Things
Other Journal = Oth. J.
journal of things = J. Thin.
`

	tbl, err := Load(strings.NewReader(src), Forward)
	require.NoError(t, err)

	v, ok := tbl.Lookup("journal of things")
	require.True(t, ok)
	assert.Equal(t, "J. Thin.", v)
	assert.Equal(t, 2, tbl.Len())

	require.Len(t, tbl.Duplicates(), 1)
	assert.Equal(t, Duplicate{Key: "journal of things", Line: 3, PreviousLine: 1}, tbl.Duplicates()[0])
}

func TestLoad_MissingDelimiter(t *testing.T) {
	src := "Journal of Things = J. Things\nNo delimiter here\n"

	_, err := Load(strings.NewReader(src), Forward, WithSource("journals.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2, fe.Line)
	assert.Equal(t, "No delimiter here", fe.Text)
	assert.Contains(t, err.Error(), "journals.txt:2")
}

func TestLoad_ExtraDelimiter(t *testing.T) {
	src := "A = B = C\n"

	_, err := Load(strings.NewReader(src), Forward)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Contains(t, err.Error(), "exactly one")

	tbl, err := Load(strings.NewReader(src), Forward, WithLenientDelimiters())
	require.NoError(t, err)

	v, ok := tbl.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "B", v, "lenient mode truncates at the second delimiter")
}

func TestLoad_EmptyInput(t *testing.T) {
	tbl, err := Load(strings.NewReader("\n\n  \n"), Forward)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.Keys())
}

func TestLoad_CRLF(t *testing.T) {
	tbl, err := Load(strings.NewReader("Acta Mathematica = Acta Math.\r\n\r\n"), Forward)
	require.NoError(t, err)

	v, ok := tbl.Lookup("acta mathematica")
	require.True(t, ok)
	assert.Equal(t, "Acta Math.", v)
}

func TestLoadYAML(t *testing.T) {
	src := `
journals:
  - full: Journal of Biological Science
    abbrev: J. Sci. Biol.
  - full: Physical Review Letters
    abbrev: Phys. Rev. Lett.
  - full: journal of biological science
    abbrev: J. Biol. Sci.
`

	tbl, err := LoadYAML(strings.NewReader(src), Forward)
	require.NoError(t, err)

	v, ok := tbl.Lookup("journal of biological science")
	require.True(t, ok)
	assert.Equal(t, "J. Biol. Sci.", v)

	require.Len(t, tbl.Duplicates(), 1)
	assert.Equal(t, 7, tbl.Duplicates()[0].Line)
	assert.Equal(t, 3, tbl.Duplicates()[0].PreviousLine)

	rev, err := LoadYAML(strings.NewReader(src), Reverse)
	require.NoError(t, err)

	v, ok = rev.Lookup("phys. rev. lett.")
	require.True(t, ok)
	assert.Equal(t, "Physical Review Letters", v)
}

func TestLoadYAML_MissingSide(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"abbrev missing", "journals:\n  - full: Journal of Biological Science\n"},
		{"full missing", "journals:\n  - abbrev: J. Sci. Biol.\n"},
		{"abbrev blank", "journals:\n  - full: Journal of Biological Science\n    abbrev: \"   \"\n"},
		{"full blank", "journals:\n  - full: \"\\t \"\n    abbrev: J. Sci. Biol.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.src), Forward)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFormat)
			assert.Contains(t, err.Error(), "entry needs both full and abbrev")
		})
	}
}

func TestLoadYAML_Empty(t *testing.T) {
	tbl, err := LoadYAML(strings.NewReader(""), Forward)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "journals.txt")
	require.NoError(t, os.WriteFile(txt, []byte(sampleTable), 0o600))

	yml := filepath.Join(dir, "journals.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("journals:\n  - full: Acta Mathematica\n    abbrev: Acta Math.\n"), 0o600))

	tbl, err := LoadFile(txt, Forward)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())

	tbl, err = LoadFile(yml, Reverse)
	require.NoError(t, err)

	v, ok := tbl.Lookup("acta math.")
	require.True(t, ok)
	assert.Equal(t, "Acta Mathematica", v)

	_, err = LoadFile(filepath.Join(dir, "missing.txt"), Forward)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, Forward, DirectionFor(false))
	assert.Equal(t, Reverse, DirectionFor(true))
	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "reverse", Reverse.String())
	assert.Equal(t, "unknown", Direction(7).String())
}
