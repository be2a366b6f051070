package match

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultStripChars are removed from every journal name before lookup. They
// are BibTeX grouping braces, e.g. "Journal of {RNA} Research".
const DefaultStripChars = "{}"

// Step is one normalization stage.
type Step func(string) string

// Normalizer applies its steps in order.
type Normalizer struct {
	steps []Step
}

// NewNormalizer creates a normalizer from the given steps.
func NewNormalizer(steps ...Step) *Normalizer {
	return &Normalizer{steps: steps}
}

// DefaultNormalizer lower-cases a name and strips DefaultStripChars.
func DefaultNormalizer() *Normalizer {
	return NewNormalizer(Lowercase, StripChars(DefaultStripChars))
}

// NormalizerOptions extends the default pipeline.
type NormalizerOptions struct {
	// ExtraStripChars are removed in addition to DefaultStripChars.
	ExtraStripChars string
	// UnicodeNFKC applies compatibility composition before lower-casing.
	UnicodeNFKC bool
}

// BuildNormalizer returns the default pipeline extended by opts. The zero
// value of opts yields a pipeline equivalent to DefaultNormalizer.
func BuildNormalizer(opts NormalizerOptions) *Normalizer {
	var steps []Step
	if opts.UnicodeNFKC {
		steps = append(steps, UnicodeNFKC)
	}

	steps = append(steps, Lowercase, StripChars(DefaultStripChars+opts.ExtraStripChars))

	return NewNormalizer(steps...)
}

// Normalize runs every step over s.
func (n *Normalizer) Normalize(s string) string {
	if n == nil {
		return DefaultNormalizer().Normalize(s)
	}

	for _, step := range n.steps {
		s = step(s)
	}

	return s
}

// Lowercase folds s to lower case.
func Lowercase(s string) string {
	return strings.ToLower(s)
}

// UnicodeNFKC rewrites s in Unicode normalization form KC.
func UnicodeNFKC(s string) string {
	return norm.NFKC.String(s)
}

// StripChars returns a step removing every rune in chars and nothing else.
func StripChars(chars string) Step {
	return func(s string) string {
		if chars == "" {
			return s
		}

		return strings.Map(func(r rune) rune {
			if strings.ContainsRune(chars, r) {
				return -1
			}

			return r
		}, s)
	}
}
