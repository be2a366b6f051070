package resolve

// Report summarizes one Resolve run.
type Report struct {
	// Attempts holds one entry per eligible record, in collection order.
	Attempts []MatchAttempt

	Total     int // Records in the collection
	Skipped   int // Records without a multi-word journal field
	Matched   int
	Unmatched int
}

// Eligible returns the number of records that were attempted.
func (r *Report) Eligible() int {
	return len(r.Attempts)
}

// Misses returns the attempts that found no replacement.
func (r *Report) Misses() []MatchAttempt {
	var out []MatchAttempt
	for _, a := range r.Attempts {
		if a.Outcome != Matched {
			out = append(out, a)
		}
	}

	return out
}
