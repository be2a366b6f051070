package match

import (
	"fmt"
	"sort"

	"bibbrev/internal/common"
)

// Candidate is one table key scored against a journal name.
type Candidate struct {
	Key   string
	Score int // Similarity in [0,100]
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Selection decides which ranked candidate is taken.
type Selection string

const (
	// SelectLegacy orders candidates by (score, key) ascending and takes the
	// first one: the lowest score overall, alphabetically first on ties. With
	// more than one key this rarely clears the threshold. Older tooling
	// behaves this way and its output depends on it.
	SelectLegacy Selection = "legacy"
	// SelectBest orders by score descending, key ascending, and takes the
	// first one: the highest score wins.
	SelectBest Selection = "best"
)

// Valid reports whether s is a known selection policy.
func (s Selection) Valid() bool {
	return s == SelectLegacy || s == SelectBest
}

// Selections returns every policy name.
func Selections() []string {
	return []string{string(SelectLegacy), string(SelectBest)}
}

// Confidence bounds.
const (
	// DefaultMinScore is the minimum score for accepting an approximate match.
	DefaultMinScore = 80
	// MaxScore is the highest possible score.
	MaxScore = 100
)

// RankCandidates scores name against every key. The returned list follows
// the order of keys; call Sort or Select to rank it.
func RankCandidates(name string, keys []string, score Scorer) CandidateList {
	candidates := make(CandidateList, 0, len(keys))
	for _, key := range keys {
		candidates = append(candidates, Candidate{
			Key:   key,
			Score: score(name, key),
		})
	}

	return candidates
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by key for determinism.
func (c CandidateList) Less(i, j int) bool {
	// Higher score comes first
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}
	// Tie-breaker: alphabetical by key
	return c[i].Key < c[j].Key
}

// ascending orders by (score, key) ascending.
type ascending struct{ CandidateList }

func (a ascending) Less(i, j int) bool {
	c := a.CandidateList
	if c[i].Score != c[j].Score {
		return c[i].Score < c[j].Score
	}

	return c[i].Key < c[j].Key
}

// Sort orders the list in place for the given policy and returns it.
func (c CandidateList) Sort(sel Selection) CandidateList {
	switch sel {
	case SelectLegacy:
		sort.Sort(ascending{c})
	default:
		sort.Sort(c)
	}

	return c
}

// Select ranks the list by sel and returns its first candidate when that
// candidate scores at least minScore.
func (c CandidateList) Select(sel Selection, minScore int) (Candidate, bool) {
	first, ok := common.First(c.Sort(sel))
	if !ok || first.Score < minScore {
		return Candidate{}, false
	}

	return first, true
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s (%d)", c.Key, c.Score)
}
