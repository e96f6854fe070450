// Package logging assembles the structured slog loggers used across
// splitaudit.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing so every component emits data with the same shape. Console
// lines carry a UTC timestamp, level, optional component prefix, and
// flattened key=value attributes. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup.
package logging
