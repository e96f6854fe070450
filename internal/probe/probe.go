package probe

import (
	"context"
	"os/exec"
	"strings"

	"splitaudit/internal/dataset"
)

// DefaultBinary is the probe executable used when the configuration does
// not name one.
const DefaultBinary = "ffprobe"

// Prober extracts encoding fingerprints from sample media files.
type Prober interface {
	// Name identifies the prober in status output and reports.
	Name() string
	// ProbeVideo inspects a video file and returns its fingerprint.
	ProbeVideo(ctx context.Context, path string) (*dataset.VideoFingerprint, error)
	// ProbeAudio inspects an audio file and returns its fingerprint.
	ProbeAudio(ctx context.Context, path string) (*dataset.AudioFingerprint, error)
}

// NullProber satisfies Prober without inspecting anything. Samples keep
// nil fingerprints, which excludes them from cluster analysis.
type NullProber struct{}

// Name implements Prober.
func (NullProber) Name() string { return "none" }

// ProbeVideo implements Prober.
func (NullProber) ProbeVideo(context.Context, string) (*dataset.VideoFingerprint, error) {
	return nil, nil
}

// ProbeAudio implements Prober.
func (NullProber) ProbeAudio(context.Context, string) (*dataset.AudioFingerprint, error) {
	return nil, nil
}

// Detect resolves the prober for this run. It returns an ffprobe-backed
// prober when the binary is on PATH (or is an absolute path that exists)
// and a NullProber otherwise. The boolean reports availability.
func Detect(binary string) (Prober, bool) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return NullProber{}, false
	}
	return &FFProbe{Binary: binary}, true
}
