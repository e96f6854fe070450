// Package main hosts the splitaudit CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into audit
// runs, preflight status displays, and configuration scaffolding. It
// centralizes configuration resolution and structured logging setup so the
// individual commands stay small.
//
// New behavior belongs in the internal packages; commands here should stay
// thin adapters that parse flags, call the engine, and render results.
package main
