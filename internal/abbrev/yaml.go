package abbrev

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlTable is the on-disk shape of a YAML abbreviation table.
type yamlTable struct {
	Journals []yamlEntry `yaml:"journals"`
}

// yamlEntry is one full/abbreviation pair.
type yamlEntry struct {
	Full   string `yaml:"full"`
	Abbrev string `yaml:"abbrev"`
	line   int
}

// UnmarshalYAML keeps the entry's line number for error messages.
func (e *yamlEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.New("expected a mapping with full and abbrev keys")
	}

	type plain yamlEntry

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*e = yamlEntry(p)
	e.line = node.Line

	return nil
}

// LoadYAML reads a YAML table:
//
//	journals:
//	  - full: Journal of Biological Science
//	    abbrev: J. Sci. Biol.
//
// Entries are applied in order with the same key selection and last-wins rule
// as text tables. The delimiter options do not apply.
func LoadYAML(r io.Reader, dir Direction, opts ...Option) (*Table, error) {
	o := applyOptions(opts)

	var doc yamlTable

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse abbreviation YAML: %w", err)
	}

	t := newTable(dir)

	for i, e := range doc.Journals {
		if strings.TrimSpace(e.Full) == "" || strings.TrimSpace(e.Abbrev) == "" {
			return nil, &FormatError{
				Source: o.source,
				Line:   e.line,
				Text:   fmt.Sprintf("journals[%d]", i),
				Reason: "entry needs both full and abbrev",
			}
		}

		t.add(e.Full, e.Abbrev, e.line)
	}

	return t.seal(), nil
}
