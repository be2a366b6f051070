package match

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio scores two strings with difflib's gestalt ratio: twice the number of
// runes in matching blocks over the total rune count. Identical strings score
// 100, and only identical strings do. A single empty input scores 0.
func Ratio(a, b string) int {
	if a == b {
		return MaxScore
	}

	if a == "" || b == "" {
		return 0
	}

	return toPercent(sequenceRatio(runes(a), runes(b)))
}

// PartialRatio scores the shorter string against windows of the longer one,
// one window per difflib matching block, so a name contained in a longer name
// scores 100. When both have the same length the first argument is the
// shorter one, which makes the score order dependent.
func PartialRatio(a, b string) int {
	if a == b {
		return MaxScore
	}

	if a == "" || b == "" {
		return 0
	}

	short, long := runes(a), runes(b)
	if len(short) > len(long) {
		short, long = long, short
	}

	best := 0.0

	for _, block := range difflib.NewMatcher(short, long).GetMatchingBlocks() {
		start := max(block.B-block.A, 0)
		end := min(start+len(short), len(long))

		r := sequenceRatio(short, long[start:end])
		if r > 0.995 {
			return MaxScore
		}

		best = max(best, r)
	}

	return toPercent(best)
}

// TokenSortRatio compares the two strings after reducing them to sorted
// word tokens, so word order does not matter.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(processString(a)), sortedTokens(processString(b)))
}

// TokenSetRatio compares the shared and the distinct word tokens of two
// strings and returns the best of the three pairings. A string whose tokens
// are a subset of the other's scores 100.
func TokenSetRatio(a, b string) int {
	pa, pb := processString(a), processString(b)
	if pa == "" || pb == "" {
		return 0
	}

	ta, tb := tokenSet(pa), tokenSet(pb)

	var sect, onlyA, onlyB []string
	for tok := range ta {
		if tb[tok] {
			sect = append(sect, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}

	for tok := range tb {
		if !ta[tok] {
			onlyB = append(onlyB, tok)
		}
	}

	sortedSect := joinSorted(sect)
	combinedA := strings.TrimSpace(sortedSect + " " + joinSorted(onlyA))
	combinedB := strings.TrimSpace(sortedSect + " " + joinSorted(onlyB))

	return max(
		Ratio(sortedSect, combinedA),
		Ratio(sortedSect, combinedB),
		Ratio(combinedA, combinedB),
	)
}

// sequenceRatio returns the difflib ratio of two rune sequences.
func sequenceRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	return difflib.NewMatcher(a, b).Ratio()
}

// runes splits s into one element per rune, the unit difflib compares.
func runes(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}

	return out
}

// processString keeps ASCII letters, digits and underscores, turns every other
// ASCII rune into a space, drops non-ASCII runes, lower-cases and trims.
func processString(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r >= utf8.RuneSelf:
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte(' ')
		}
	}

	return strings.TrimSpace(b.String())
}

func sortedTokens(s string) string {
	return joinSorted(strings.Fields(s))
}

func joinSorted(tokens []string) string {
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)

	return strings.Join(sorted, " ")
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}

	return set
}
