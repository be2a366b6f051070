// Package diagnostic provides the structured events emitted while journal
// names are resolved, and the sinks that receive them.
//
// Key capabilities:
//   - "replaced" info events for every rewritten journal field
//   - "not_found" error events for names missing from the table
//   - "duplicate_key" warnings for table keys defined more than once
//   - Diagnostics for in-memory collection, LogSink for slog output, Tee for both
package diagnostic
