// Package report defines the audit report model and its serializations.
//
// A Report is assembled once per run and written as indented JSON to the
// configured output path. Optional CSV and SQLite exports carry the same
// findings; both are write-only artifacts regenerated per run and never read
// back by the audit. The package also owns the risk level scale and its
// mapping onto process exit codes.
package report
