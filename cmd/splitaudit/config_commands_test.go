package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	isolateEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	stdout, _, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, stdout, "Wrote sample configuration")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	requireContains(t, string(data), "cluster_threshold")

	// A second init without --overwrite must refuse.
	_, _, err = runCLI(t, "config", "init", "--path", target)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("err = %v, want refusal to overwrite", err)
	}
}

func TestConfigInitOverwrite(t *testing.T) {
	isolateEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# stale\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "config", "init", "--path", target, "--overwrite")
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "# stale") {
		t.Error("overwrite left the stale file in place")
	}
}

func TestConfigShowPrintsResolvedValues(t *testing.T) {
	isolateEnv(t)

	stdout, stderr, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v (stderr: %s)", err, stderr)
	}
	requireContains(t, stdout, "built-in defaults")
	requireContains(t, stdout, "cluster_threshold = 50")
	requireContains(t, stdout, "[dataset]")
}

func TestConfigShowReadsExplicitFile(t *testing.T) {
	isolateEnv(t)

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	content := "[audit]\ncluster_threshold = 7\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, stdout, "# resolved from "+cfgPath)
	requireContains(t, stdout, "cluster_threshold = 7")
}
