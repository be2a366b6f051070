package match

import (
	"testing"
)

func TestDefaultNormalizer(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Journal of Biological Science", "journal of biological science"},
		{"Journal of {B}iological Science", "journal of biological science"},
		{"{{Nested}} {Braces}", "nested braces"},
		{"PHYS. REV. LETT.", "phys. rev. lett."},

		// Only braces are stripped
		{`Journal of {\'E}tudes`, `journal of \'etudes`},
		{"Annals & Reports: (Series B)", "annals & reports: (series b)"},
		{"  spaced  out  ", "  spaced  out  "},

		// Edge cases
		{"", ""},
		{"{}", ""},
	}

	n := DefaultNormalizer()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := n.Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestBuildNormalizer(t *testing.T) {
	tests := []struct {
		name     string
		opts     NormalizerOptions
		input    string
		expected string
	}{
		{
			name:     "zero options match default",
			input:    `Journal of {\'E}tudes`,
			expected: `journal of \'etudes`,
		},
		{
			name:     "extra strip characters",
			opts:     NormalizerOptions{ExtraStripChars: `\'`},
			input:    `Journal of {\'E}tudes`,
			expected: "journal of etudes",
		},
		{
			name:     "nfkc folds ligatures",
			opts:     NormalizerOptions{UnicodeNFKC: true},
			input:    "Journal of Scientiﬁc Computing",
			expected: "journal of scientific computing",
		},
		{
			name:     "ligature kept without nfkc",
			input:    "Journal of Scientiﬁc Computing",
			expected: "journal of scientiﬁc computing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildNormalizer(tt.opts).Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNilNormalizerUsesDefault(t *testing.T) {
	var n *Normalizer
	if got := n.Normalize("{Nature} Physics"); got != "nature physics" {
		t.Errorf("Normalize() = %q, want %q", got, "nature physics")
	}
}

func TestStripCharsEmpty(t *testing.T) {
	if got := StripChars("")("{a}"); got != "{a}" {
		t.Errorf("StripChars(\"\") changed input: %q", got)
	}
}
