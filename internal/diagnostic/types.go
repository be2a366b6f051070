package diagnostic

import (
	"fmt"

	"bibbrev/internal/common"
)

// Event codes.
const (
	// CodeReplaced marks a journal field that was rewritten.
	CodeReplaced = "replaced"
	// CodeNotFound marks a journal name with no table entry.
	CodeNotFound = "not_found"
	// CodeDuplicateKey marks a table key defined more than once.
	CodeDuplicateKey = "duplicate_key"
)

// Severity represents the severity level of an event.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Event represents a single resolution outcome worth reporting.
type Event struct {
	// Severity of the event.
	Severity Severity
	// Code is a unique identifier for this kind of event.
	Code string
	// RecordKey identifies the record the event relates to.
	RecordKey string
	// Original is the journal field as read.
	Original string
	// Normalized is the name used for matching.
	Normalized string
	// Resolved is the replacement value (replaced events only).
	Resolved string
	// Line and PreviousLine locate a duplicate table key.
	Line         int
	PreviousLine int
}

// Replaced builds the event for a rewritten journal field.
func Replaced(recordKey, original, resolved string) Event {
	return Event{
		Severity:  SeverityInfo,
		Code:      CodeReplaced,
		RecordKey: recordKey,
		Original:  original,
		Resolved:  resolved,
	}
}

// NotFound builds the event for a journal name missing from the table.
func NotFound(recordKey, normalized string) Event {
	return Event{
		Severity:   SeverityError,
		Code:       CodeNotFound,
		RecordKey:  recordKey,
		Normalized: normalized,
	}
}

// DuplicateKey builds the warning for a table key whose definition on line
// overrides the one on previousLine.
func DuplicateKey(key string, line, previousLine int) Event {
	return Event{
		Severity:     SeverityWarning,
		Code:         CodeDuplicateKey,
		Normalized:   key,
		Line:         line,
		PreviousLine: previousLine,
	}
}

// Message is the human-readable description.
func (e Event) Message() string {
	switch e.Code {
	case CodeReplaced:
		return fmt.Sprintf("%s replaced with %s for key %s", e.Original, e.Resolved, e.RecordKey)
	case CodeNotFound:
		return fmt.Sprintf("%s not found in abbreviations", e.Normalized)
	case CodeDuplicateKey:
		return fmt.Sprintf("duplicate abbreviation key %s: line %d overrides line %d", e.Normalized, e.Line, e.PreviousLine)
	default:
		return e.Code
	}
}

// String returns a formatted event string.
func (e Event) String() string {
	msg := e.Message()
	if e.Code != "" {
		msg = fmt.Sprintf("[%s] %s", e.Code, msg)
	}

	return e.Severity.String() + ": " + msg
}

// Sink receives events.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Tee fans each event out to every sink in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(e Event) {
		for _, s := range sinks {
			if s != nil {
				s.Emit(e)
			}
		}
	})
}

// Diagnostics collects events by severity, keeping emission order overall.
type Diagnostics struct {
	Events   []Event
	Errors   []Event
	Warnings []Event
	Infos    []Event
}

// Emit implements Sink.
func (d *Diagnostics) Emit(e Event) {
	d.Events = append(d.Events, e)

	switch e.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, e)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, e)
	default:
		d.Infos = append(d.Infos, e)
	}
}
