// Package bibtex reads BibTeX databases into reference collections and writes
// resolved journal names back.
//
// Only the journal field is ever rewritten. Preambles and @string definitions
// are written back, and macro references in field values stay references.
// Field order within an entry is not kept.
package bibtex

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	bib "github.com/nickng/bibtex"

	"bibbrev/internal/reference"
)

// parseMu serializes bib.Parse, which keeps its state in package variables.
var parseMu sync.Mutex

// leadingFields are written first, in this order. Other fields follow sorted
// by name.
var leadingFields = []string{"title", "author", "url"}

// Document is a parsed BibTeX database.
type Document struct {
	bib *bib.BibTex
	// macros lists the @string names in definition order.
	macros []string
}

// Read parses a BibTeX database. A reference to an undefined @string macro is
// reported as an error wrapping bib.ErrUnknownStringVar.
func Read(r io.Reader) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bibtex: %w", err)
	}

	macros, err := scanMacros(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse bibtex: %w", err)
	}

	parseMu.Lock()
	// A failed parse can leave the lexer inside a field value. A lone comma
	// resets it.
	_, _ = bib.Parse(strings.NewReader(","))
	parsed, err := bib.Parse(bytes.NewReader(src))
	parseMu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("parse bibtex: %w", err)
	}

	return &Document{bib: parsed, macros: macros}, nil
}

// ReadFile parses the BibTeX file at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bibtex file: %w", err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.bib.Entries)
}

// Collection returns a fresh collection of the document's entries in source
// order. Field values are the parser's string form, field names lower-cased.
func (d *Document) Collection() *reference.Collection {
	coll := reference.NewCollection(len(d.bib.Entries))

	for _, entry := range d.bib.Entries {
		rec := reference.NewRecord(entry.Type, entry.CiteName)
		for name, value := range entry.Fields {
			if value == nil {
				continue
			}
			rec.Set(name, value.String())
		}

		coll.Add(rec)
	}

	return coll
}

// Apply writes every changed journal value of coll back into the parsed
// entries and returns how many entries changed. Records unknown to the
// document are ignored.
func (d *Document) Apply(coll *reference.Collection) int {
	changed := 0

	for _, entry := range d.bib.Entries {
		rec, ok := coll.Get(entry.CiteName)
		if !ok {
			continue
		}

		journal, ok := rec.Journal()
		if !ok {
			continue
		}

		field := journalField(entry)
		if prev := entry.Fields[field]; prev != nil && prev.String() == journal {
			continue
		}

		entry.Fields[field] = bib.NewBibConst(journal)
		changed++
	}

	return changed
}

// journalField returns the journal field name as spelled in entry.
func journalField(entry *bib.BibEntry) string {
	for name := range entry.Fields {
		if strings.EqualFold(name, reference.JournalField) {
			return name
		}
	}

	return reference.JournalField
}

// WriteTo serializes the document: preambles, then @string definitions, then
// entries in source order. It implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	for _, p := range d.bib.Preambles {
		b.WriteString("@preamble{")
		writeValue(&b, p, true)
		b.WriteString("}\n\n")
	}

	for _, name := range d.macros {
		v, ok := d.bib.StringVar[name]
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "@string{%s = ", name)
		writeValue(&b, v.Value, false)
		b.WriteString("}\n\n")
	}

	for i, entry := range d.bib.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}

		writeEntry(&b, entry)
	}

	n, err := io.WriteString(w, b.String())

	return int64(n), err
}

func writeEntry(b *strings.Builder, entry *bib.BibEntry) {
	fmt.Fprintf(b, "@%s{%s,\n", entry.Type, entry.CiteName)

	names := make([]string, 0, len(entry.Fields))
	for name := range entry.Fields {
		names = append(names, name)
	}

	slices.SortFunc(names, func(x, y string) int {
		return cmp.Or(cmp.Compare(fieldRank(x), fieldRank(y)), cmp.Compare(x, y))
	})

	for _, name := range names {
		fmt.Fprintf(b, "  %s = ", name)
		writeValue(b, entry.Fields[name], false)
		b.WriteString(",\n")
	}

	b.WriteString("}\n")
}

func fieldRank(name string) int {
	if i := slices.Index(leadingFields, name); i >= 0 {
		return i
	}

	return len(leadingFields)
}

// writeValue writes v in BibTeX syntax. Macro references stay bare and
// concatenations keep their '#'. Preambles need quoted constants.
func writeValue(b *strings.Builder, v bib.BibString, quoted bool) {
	switch v := v.(type) {
	case *bib.BibVar:
		b.WriteString(v.Key)
	case *bib.BibComposite:
		for i, part := range *v {
			if i > 0 {
				b.WriteString(" # ")
			}

			writeValue(b, part, quoted)
		}
	case nil:
		b.WriteString("{}")
	default:
		text := v.String()

		switch {
		case quoted, strings.Contains(text, "@") && !strings.Contains(text, `"`):
			b.WriteString(`"` + text + `"`)
		case isDigits(text):
			b.WriteString(text)
		default:
			b.WriteString("{" + text + "}")
		}
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
