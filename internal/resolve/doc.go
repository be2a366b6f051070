// Package resolve rewrites the journal field of bibliographic records using an
// abbreviation table.
//
// For every eligible record the resolver normalizes the journal name, picks a
// lookup key with the configured strategy (exact or approximate) and either
// replaces the field or reports the name as not found. A miss never stops the
// run: every eligible record is attempted and the collection is always left in
// a usable, partially rewritten state.
//
// Records are eligible when they carry a journal field whose value splits on
// single spaces into more than one token. One-word names such as "Nature" are
// left alone.
package resolve
