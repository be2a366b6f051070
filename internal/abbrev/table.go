package abbrev

import (
	"sort"
	"strings"

	"bibbrev/internal/common"
)

// Direction selects which side of each pair becomes the lookup key.
type Direction int

const (
	// Forward maps full names to abbreviations.
	Forward Direction = iota
	// Reverse maps abbreviations to full names.
	Reverse
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return common.UnknownStr
	}
}

// DirectionFor returns Reverse when reverse is set, Forward otherwise.
func DirectionFor(reverse bool) Direction {
	if reverse {
		return Reverse
	}
	return Forward
}

// Duplicate records a key that was defined more than once.
type Duplicate struct {
	Key          string
	Line         int // Line of the definition that won
	PreviousLine int // Line of the definition that was overwritten
}

// Table is an immutable journal name lookup.
type Table struct {
	direction  Direction
	entries    map[string]string
	lines      map[string]int
	duplicates []Duplicate
	keys       []string
}

func newTable(dir Direction) *Table {
	return &Table{
		direction: dir,
		entries:   make(map[string]string),
		lines:     make(map[string]int),
	}
}

// add inserts one pair, choosing key and value by direction. Later
// definitions of the same key overwrite earlier ones.
func (t *Table) add(full, abbrev string, line int) {
	left := strings.TrimSpace(full)
	right := strings.TrimSpace(abbrev)

	key, value := strings.ToLower(left), right
	if t.direction == Reverse {
		key, value = strings.ToLower(right), left
	}

	if prev, ok := t.lines[key]; ok {
		t.duplicates = append(t.duplicates, Duplicate{
			Key:          key,
			Line:         line,
			PreviousLine: prev,
		})
	}

	t.entries[key] = value
	t.lines[key] = line
}

// seal finalizes the table after loading.
func (t *Table) seal() *Table {
	t.keys = make([]string, 0, len(t.entries))
	for k := range t.entries {
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)

	return t
}

// Lookup returns the replacement for an already lower-cased key.
func (t *Table) Lookup(key string) (string, bool) {
	v, ok := t.entries[key]
	return v, ok
}

// Keys returns all lookup keys in sorted order. The slice must not be modified.
func (t *Table) Keys() []string {
	return t.keys
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	return len(t.entries)
}

// Direction returns the direction the table was loaded with.
func (t *Table) Direction() Direction {
	return t.direction
}

// Duplicates returns every overwrite that happened while loading, in file order.
func (t *Table) Duplicates() []Duplicate {
	return t.duplicates
}
