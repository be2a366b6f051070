// Package match provides journal-name normalization, string similarity scoring
// and candidate ranking for approximate journal lookup.
//
// Key functions:
//   - Normalizer: ordered pipeline of cleanup steps applied before any lookup
//   - Ratio, PartialRatio, TokenSortRatio, TokenSetRatio: similarity in [0,100]
//   - Levenshtein: edit distance between strings
//   - RankCandidates / CandidateList.Select: score table keys and pick one
package match
