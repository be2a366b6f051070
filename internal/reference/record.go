// Package reference holds the in-memory bibliographic record collection that
// the journal resolver reads and mutates.
//
// A Collection keeps records in source order so every pass over it, and every
// event emitted during that pass, is deterministic.
package reference

import (
	"fmt"
	"strings"
)

// JournalField is the field the resolver rewrites.
const JournalField = "journal"

// Fields maps a lower-cased field name to its value.
type Fields map[string]string

// Record is one bibliographic entry.
type Record struct {
	Key    string // Unique citation key
	Type   string // Entry type (e.g., article)
	Fields Fields
}

// NewRecord creates a record with an empty field map.
func NewRecord(entryType, key string) *Record {
	return &Record{
		Key:    key,
		Type:   entryType,
		Fields: make(Fields),
	}
}

// Get returns the value of a field. Field names are case-insensitive.
func (r *Record) Get(name string) (string, bool) {
	v, ok := r.Fields[strings.ToLower(name)]
	return v, ok
}

// Set assigns a field value.
func (r *Record) Set(name, value string) {
	if r.Fields == nil {
		r.Fields = make(Fields)
	}
	r.Fields[strings.ToLower(name)] = value
}

// Journal returns the journal field and whether it is present.
func (r *Record) Journal() (string, bool) {
	return r.Get(JournalField)
}

// SetJournal replaces the journal field.
func (r *Record) SetJournal(value string) {
	r.Set(JournalField, value)
}

func (r *Record) String() string {
	journal, _ := r.Journal()
	return fmt.Sprintf("@%s{%s} %q", r.Type, r.Key, journal)
}

// Collection is an ordered set of records indexed by key.
type Collection struct {
	records []*Record
	index   map[string]int
}

// NewCollection creates an empty collection with room for capacity records.
func NewCollection(capacity int) *Collection {
	return &Collection{
		records: make([]*Record, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

// Add appends a record. A record whose key is already present replaces the
// earlier one in place, keeping the original position.
func (c *Collection) Add(r *Record) {
	if i, ok := c.index[r.Key]; ok {
		c.records[i] = r
		return
	}
	c.index[r.Key] = len(c.records)
	c.records = append(c.records, r)
}

// Get returns the record with the given key.
func (c *Collection) Get(key string) (*Record, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.records[i], true
}

// Records returns the records in source order. The slice is shared with the
// collection; callers may mutate the records but not the slice.
func (c *Collection) Records() []*Record {
	return c.records
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Journals returns a snapshot of every record's journal field, keyed by record
// key. Records without the field are omitted.
func (c *Collection) Journals() map[string]string {
	out := make(map[string]string, len(c.records))
	for _, r := range c.records {
		if j, ok := r.Journal(); ok {
			out[r.Key] = j
		}
	}
	return out
}
