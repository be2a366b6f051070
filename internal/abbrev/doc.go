// Package abbrev loads journal abbreviation tables.
//
// A table maps a lower-cased journal name to its replacement. The direction is
// fixed when the table is loaded:
//   - Forward: full name -> abbreviation
//   - Reverse: abbreviation -> full name
//
// Text tables hold one "Full Name = Abbrev." pair per line; YAML tables hold a
// list of {full, abbrev} entries. When the same key is defined twice the later
// definition wins and the overwrite is recorded in Table.Duplicates.
package abbrev
