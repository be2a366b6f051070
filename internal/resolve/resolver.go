package resolve

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"bibbrev/internal/abbrev"
	"bibbrev/internal/diagnostic"
	"bibbrev/internal/match"
	"bibbrev/internal/reference"
)

// MatchAttempt is the resolution of one journal name.
type MatchAttempt struct {
	RecordKey  string
	Original   string // Journal field as read
	Normalized string // Name after normalization

	// Candidate is the lookup key chosen by the strategy. For exact matching
	// it is the normalized name.
	Candidate    string
	HasCandidate bool
	// Scored is set when an approximate strategy selected the candidate.
	// Score is meaningful only then, and may be 0.
	Scored bool
	Score  int

	Replacement string
	Outcome     Outcome
}

// Resolver applies one strategy and one table to record collections.
type Resolver struct {
	table      *abbrev.Table
	config     Config
	scorer     match.Scorer
	normalizer *match.Normalizer
	sink       diagnostic.Sink
}

// NewResolver validates config and creates a Resolver. Events go to sink; a
// nil sink discards them.
func NewResolver(table *abbrev.Table, config Config, sink diagnostic.Sink) (*Resolver, error) {
	if table == nil {
		return nil, errors.New("abbreviation table is required")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := &Resolver{
		table:      table,
		config:     config,
		normalizer: config.Normalizer,
		sink:       sink,
	}

	if r.normalizer == nil {
		r.normalizer = match.DefaultNormalizer()
	}

	if r.sink == nil {
		r.sink = diagnostic.Discard
	}

	if !config.Algorithm.IsExact() {
		scorer, err := match.ScorerFor(config.Algorithm)
		if err != nil {
			return nil, &ConfigError{Field: "algorithm", Value: config.Algorithm, Reason: err.Error()}
		}

		r.scorer = scorer
	}

	return r, nil
}

// Eligible reports whether a record's journal field should be resolved: it
// must be present, non-empty and contain more than one space-separated token.
func Eligible(rec *reference.Record) bool {
	journal, ok := rec.Journal()
	if !ok || journal == "" {
		return false
	}

	return len(strings.Split(journal, " ")) > 1
}

// Attempt resolves one journal name without touching any record or sink.
func (r *Resolver) Attempt(recordKey, name string) MatchAttempt {
	attempt := MatchAttempt{
		RecordKey:  recordKey,
		Original:   name,
		Normalized: r.normalizer.Normalize(name),
	}

	if r.scorer == nil {
		attempt.Candidate = attempt.Normalized
		attempt.HasCandidate = true
	} else {
		candidates := match.RankCandidates(attempt.Normalized, r.table.Keys(), r.scorer)
		if best, ok := candidates.Select(r.config.Selection, r.config.MinScore); ok {
			attempt.Candidate = best.Key
			attempt.HasCandidate = true
			attempt.Scored = true
			attempt.Score = best.Score
		}
	}

	if !attempt.HasCandidate {
		return attempt
	}

	if replacement, ok := r.table.Lookup(attempt.Candidate); ok {
		attempt.Replacement = replacement
		attempt.Outcome = Matched
	}

	return attempt
}

// Resolve attempts every eligible record of coll in order, rewrites the
// journal field of each match and emits one event per attempt. Nothing is
// modified if ctx is cancelled before all attempts are scored.
func (r *Resolver) Resolve(ctx context.Context, coll *reference.Collection) (*Report, error) {
	report := &Report{Total: coll.Len()}

	var eligible []*reference.Record
	for _, rec := range coll.Records() {
		if !Eligible(rec) {
			report.Skipped++
			continue
		}

		eligible = append(eligible, rec)
	}

	attempts, err := r.attemptAll(ctx, eligible)
	if err != nil {
		return nil, err
	}

	for i, attempt := range attempts {
		if attempt.Outcome == Matched {
			eligible[i].SetJournal(attempt.Replacement)
			r.sink.Emit(diagnostic.Replaced(attempt.RecordKey, attempt.Original, attempt.Replacement))
			report.Matched++
		} else {
			r.sink.Emit(diagnostic.NotFound(attempt.RecordKey, attempt.Normalized))
			report.Unmatched++
		}
	}

	report.Attempts = attempts

	return report, nil
}

// attemptAll scores records sequentially or on a bounded pool. Results keep
// the order of recs either way.
func (r *Resolver) attemptAll(ctx context.Context, recs []*reference.Record) ([]MatchAttempt, error) {
	attempts := make([]MatchAttempt, len(recs))

	if r.config.Workers <= 1 {
		for i, rec := range recs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			journal, _ := rec.Journal()
			attempts[i] = r.Attempt(rec.Key, journal)
		}

		return attempts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)

	for i, rec := range recs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			journal, _ := rec.Journal()
			attempts[i] = r.Attempt(rec.Key, journal)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return attempts, nil
}

// Journals builds a Resolver for table and config and runs it once over coll.
func Journals(
	ctx context.Context,
	coll *reference.Collection,
	table *abbrev.Table,
	config Config,
	sink diagnostic.Sink,
) (*Report, error) {
	r, err := NewResolver(table, config, sink)
	if err != nil {
		return nil, err
	}

	return r.Resolve(ctx, coll)
}
