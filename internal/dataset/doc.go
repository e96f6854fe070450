// Package dataset models the on-disk layout of a split supervised-learning
// dataset and builds the in-memory catalog the audit runs over.
//
// The expected layout is root/{split}/{sample}/ with one recognized video
// file per sample directory, plus an optional audio file and optional
// meta.json. Indexing is a single read-only pass; the catalog is completed
// by the parallel extraction phase and treated as immutable afterwards.
//
// The package also owns subject-identity resolution: a declared identity in
// meta.json always wins, and a best-effort directory-name heuristic fills
// the gaps.
package dataset
