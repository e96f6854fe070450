package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"splitaudit/internal/config"
)

// chdir mirrors testing.T.Chdir, which needs Go 1.24+; the build
// toolchain for this module is older.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(dir) {
		if dir, err = os.Getwd(); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaultsWhenNoFilePresent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected a resolved path even without a file")
	}
	if exists {
		t.Fatal("no config file should exist under a fresh HOME")
	}

	if got := cfg.Dataset.Splits; len(got) != 3 || got[0] != "train" || got[1] != "val" || got[2] != "test" {
		t.Fatalf("unexpected default splits: %v", got)
	}
	if filepath.Base(cfg.Dataset.Output) != "report.json" {
		t.Fatalf("unexpected default output: %q", cfg.Dataset.Output)
	}
	if !filepath.IsAbs(cfg.Dataset.Output) {
		t.Fatalf("expected output to be absolute, got %q", cfg.Dataset.Output)
	}
	if cfg.Audit.ClusterThreshold != 50 {
		t.Fatalf("unexpected cluster threshold: %d", cfg.Audit.ClusterThreshold)
	}
	if cfg.Audit.Workers != 0 {
		t.Fatalf("expected workers 0 (auto), got %d", cfg.Audit.Workers)
	}
	if !cfg.Probe.Enabled {
		t.Fatal("expected probe enabled by default")
	}
	if cfg.ProbeBinary() != "ffprobe" {
		t.Fatalf("unexpected probe binary: %q", cfg.ProbeBinary())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomTOMLPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "splitaudit.toml")

	content := `
[dataset]
root = "` + filepath.Join(tempDir, "data") + `"
splits = ["train", "holdout"]

[audit]
workers = 4
cluster_threshold = 10

[probe]
enabled = false
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("explicit config file should be reported as existing")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Dataset.Root != filepath.Join(tempDir, "data") {
		t.Fatalf("unexpected dataset root: %q", cfg.Dataset.Root)
	}
	if got := cfg.Dataset.Splits; len(got) != 2 || got[0] != "train" || got[1] != "holdout" {
		t.Fatalf("unexpected splits: %v", got)
	}
	if cfg.Audit.Workers != 4 {
		t.Fatalf("expected workers 4, got %d", cfg.Audit.Workers)
	}
	if cfg.Audit.ClusterThreshold != 10 {
		t.Fatalf("expected cluster threshold 10, got %d", cfg.Audit.ClusterThreshold)
	}
	if cfg.Probe.Enabled {
		t.Fatal("expected probe disabled by file")
	}
}

func TestLoadYAMLMatchesTOML(t *testing.T) {
	tempDir := t.TempDir()

	tomlPath := filepath.Join(tempDir, "cfg.toml")
	tomlContent := `
[dataset]
splits = ["a", "b"]

[audit]
workers = 2
cluster_threshold = 7
`
	if err := os.WriteFile(tomlPath, []byte(tomlContent), 0o644); err != nil {
		t.Fatalf("write toml: %v", err)
	}

	yamlPath := filepath.Join(tempDir, "cfg.yaml")
	yamlContent := `
dataset:
  splits: ["a", "b"]
audit:
  workers: 2
  cluster_threshold: 7
`
	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	fromTOML, _, _, err := config.Load(tomlPath)
	if err != nil {
		t.Fatalf("Load toml: %v", err)
	}
	fromYAML, _, _, err := config.Load(yamlPath)
	if err != nil {
		t.Fatalf("Load yaml: %v", err)
	}

	if fromTOML.Audit != fromYAML.Audit {
		t.Fatalf("audit sections differ: %+v vs %+v", fromTOML.Audit, fromYAML.Audit)
	}
	if strings.Join(fromTOML.Dataset.Splits, ",") != strings.Join(fromYAML.Dataset.Splits, ",") {
		t.Fatalf("splits differ: %v vs %v", fromTOML.Dataset.Splits, fromYAML.Dataset.Splits)
	}
}

func TestNtfyTopicEnvFallback(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())
	t.Setenv("SPLITAUDIT_NTFY_TOPIC", "audit-alerts")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Notifications.NtfyTopic != "audit-alerts" {
		t.Fatalf("expected topic from env, got %q", cfg.Notifications.NtfyTopic)
	}
}

func TestCreateSampleProducesParseableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "cluster_threshold") {
		t.Fatalf("sample config missing cluster threshold: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if len(cfg.Dataset.Splits) != 3 {
		t.Fatalf("expected three default splits in sample, got %v", cfg.Dataset.Splits)
	}
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Audit.Workers = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative workers")
	}

	cfg = config.Default()
	cfg.Audit.ClusterThreshold = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero cluster threshold")
	}

	cfg = config.Default()
	cfg.Dataset.Splits = []string{"train"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for a single split")
	}

	cfg = config.Default()
	cfg.Notifications.RequestTimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive request timeout")
	}
}

func TestNormalizeSplits(t *testing.T) {
	got := config.NormalizeSplits([]string{" train ", "", "val", "train", "test"})
	want := []string{"train", "val", "test"}
	if len(got) != len(want) {
		t.Fatalf("NormalizeSplits = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("NormalizeSplits = %v, want %v", got, want)
		}
	}
}
