package match

import (
	"fmt"
	"strings"
)

// Algorithm names a matching strategy.
type Algorithm string

// Supported algorithms. AlgorithmExact uses the normalized name as the lookup
// key; every other algorithm scores it against all table keys.
const (
	AlgorithmExact          Algorithm = "exact"
	AlgorithmRatio          Algorithm = "ratio"
	AlgorithmPartialRatio   Algorithm = "partial_ratio"
	AlgorithmTokenSortRatio Algorithm = "token_sort_ratio"
	AlgorithmTokenSetRatio  Algorithm = "token_set_ratio"
	AlgorithmLevenshtein    Algorithm = "levenshtein"
)

// Scorer rates the similarity of two strings in [0,100].
type Scorer func(a, b string) int

var scorers = map[Algorithm]Scorer{
	AlgorithmRatio:          Ratio,
	AlgorithmPartialRatio:   PartialRatio,
	AlgorithmTokenSortRatio: TokenSortRatio,
	AlgorithmTokenSetRatio:  TokenSetRatio,
	AlgorithmLevenshtein:    LevenshteinRatio,
}

// Algorithms returns every supported algorithm name, exact first.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmExact,
		AlgorithmRatio,
		AlgorithmPartialRatio,
		AlgorithmTokenSortRatio,
		AlgorithmTokenSetRatio,
		AlgorithmLevenshtein,
	}
}

// AlgorithmNames returns Algorithms as strings, for flag help and completion.
func AlgorithmNames() []string {
	algos := Algorithms()
	names := make([]string, len(algos))
	for i, a := range algos {
		names[i] = string(a)
	}

	return names
}

// IsExact reports whether a is the exact strategy.
func (a Algorithm) IsExact() bool {
	return a == AlgorithmExact
}

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool {
	if a.IsExact() {
		return true
	}

	_, ok := scorers[a]

	return ok
}

// ScorerFor returns the similarity function for an approximate algorithm.
func ScorerFor(a Algorithm) (Scorer, error) {
	if a.IsExact() {
		return nil, fmt.Errorf("algorithm %q does not score candidates", a)
	}

	s, ok := scorers[a]
	if !ok {
		return nil, fmt.Errorf("unknown match algorithm %q (want one of %s)",
			a, strings.Join(AlgorithmNames(), ", "))
	}

	return s, nil
}
