// Package testsupport provides builders shared by tests: seeded configs,
// dataset trees, and stubbed binaries on PATH.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"splitaudit/internal/config"
)

// ConfigOption adjusts the config produced by NewConfig.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig builds a config rooted in a fresh temp directory: the dataset
// root, report output, and log directory are all unique to the test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Dataset.Root = filepath.Join(base, "dataset")
	cfg.Dataset.Output = filepath.Join(base, "report.json")
	cfg.Logging.LogDir = filepath.Join(base, "logs")

	b := &configBuilder{t: t, baseDir: base, cfg: &cfg}
	for _, opt := range opts {
		opt(b)
	}
	return b.cfg
}

// WithSplits overrides the split names on the test config.
func WithSplits(splits ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dataset.Splits = splits
	}
}

// WithNtfyTopic points notifications at the given endpoint.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// WithProbeDisabled turns off fingerprint probing on the test config.
func WithProbeDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Probe.Enabled = false
	}
}

// WithStubbedBinaries places stub executables on PATH so capability
// detection succeeds without the real tools installed. An empty name list
// stubs ffprobe.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffprobe"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("create stub bin dir: %v", err)
		}
		for _, name := range names {
			stub := filepath.Join(binDir, name)
			if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir recovers the temp directory a NewConfig config was rooted in.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Dataset.Root)
}
