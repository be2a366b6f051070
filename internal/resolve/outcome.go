package resolve

//go:generate go tool stringer -type=Outcome -output=outcome_string.go

// Outcome is the result of one match attempt.
type Outcome int

const (
	Unmatched Outcome = iota
	Matched
)
