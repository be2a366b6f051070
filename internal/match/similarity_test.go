package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 100},
		{"", "abc", 0},
		{"nature", "nature", 100},
		{"abc", "xyz", 0},
		{"this is a test", "this is a test!", 97},
		{"journal of biological science", "journal of biological sciences", 98},
		{"Nature", "nature", 83},
		{"j. biol. chem.", "journal of biological chemistry", 49},
		{"journal of biological science", "physical review letters", 31},
		{"kitten", "sitting", 62},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Ratio(tt.a, tt.b))
			assert.Equal(t, tt.expected, Ratio(tt.b, tt.a), "ratio must be symmetric")
		})
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "nature", 0},
		{"nature", "nature communications", 100},
		{"abc", "xxabcxx", 100},
		{"abcd", "abce", 75},
		{"abc", "xyz12", 0},
		{"journal of biological science", "physical review letters", 41},
		{"j. biol. chem.", "journal of biological chemistry", 50},
		{"journal of biology", "journal of biological science", 94},
		{"phys rev lett", "physical review letters", 69},
		{"kitten", "sitting", 67},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, PartialRatio(tt.a, tt.b))
			assert.Equal(t, tt.expected, PartialRatio(tt.b, tt.a))
		})
	}
}

func TestPartialRatio_EqualLengthIsOrdered(t *testing.T) {
	a := "new york mets vs atlanta braves"
	b := "atlanta braves vs new york mets"

	assert.Equal(t, 45, PartialRatio(a, b))
	assert.Equal(t, 62, PartialRatio(b, a))
}

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"fuzzy wuzzy was a bear", "wuzzy fuzzy was a bear", 100},
		{"Journal of Biological Science", "science, biological journal of", 100},
		{"Acta Médica", "acta medica", 95}, // non-ASCII runes are dropped
		{"", "nature", 0},
		{"new york mets vs atlanta braves", "atlanta braves vs new york mets", 100},
		{"journal of biological science", "physical review letters", 35},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenSortRatio(tt.a, tt.b))
		})
	}
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"journal of biological science", "biological science", 100},
		{"fuzzy was a bear", "fuzzy fuzzy was a bear", 100},
		{"abc", "xyz", 0},
		{"", "nature", 0},
		{"!!!", "nature", 0},
		{"nature", "nature communications", 100},
		{"phys rev lett", "physical review letters", 72},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, TokenSetRatio(tt.a, tt.b))
		})
	}
}

func TestScorersOnlyPerfectOnIdentical(t *testing.T) {
	// Ratio and Levenshtein score 100 only for identical strings.
	for _, score := range []Scorer{Ratio, LevenshteinRatio} {
		assert.Equal(t, 100, score("journal of things", "journal of things"))
		assert.Less(t, score("journal of things", "journal of thing"), 100)
		assert.Less(t, score("journal of things", "Journal of things"), 100)
	}
}

func TestProcessString(t *testing.T) {
	assert.Equal(t, "phys  rev  lett", processString("Phys. Rev. Lett."))
	assert.Equal(t, "j_biol", processString("  J_Biol "))
	assert.Equal(t, "acta mdica", processString("Acta Médica"))
}

func TestRunes(t *testing.T) {
	assert.Equal(t, []string{"a", "é", "b"}, runes("aéb"))
	assert.Empty(t, runes(""))
}
