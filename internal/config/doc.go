// Package config loads, normalizes, and validates splitaudit configuration.
//
// Defaults come first, then an optional TOML or YAML file (selected by
// extension), then environment fallbacks such as SPLITAUDIT_NTFY_TOPIC.
// Paths are tilde-expanded and made absolute during normalization, so the
// Config handed to the rest of the program contains only resolved values.
//
// Settings should always enter the program through this package; that is
// what guarantees sanitized paths, canonical split lists, and early
// validation errors.
package config
