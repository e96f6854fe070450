// Package preflight provides readiness checks for the paths and tools an
// audit depends on.
//
// The checks run in two contexts:
//   - The audit command runs RunAll before any hashing so a doomed run
//     fails in milliseconds instead of after reading gigabytes.
//   - "splitaudit status" renders the same results as a table.
//
// Optional checks (missing splits, an absent ffprobe) report their state
// without blocking an audit; the engine degrades around them.
package preflight
