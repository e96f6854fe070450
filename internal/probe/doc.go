// Package probe extracts encoding fingerprints from media files.
//
// The primary implementation shells out to ffprobe and parses its JSON
// stream report. When ffprobe is not installed the audit falls back to a
// null prober and skips fingerprint clustering instead of failing the run.
package probe
