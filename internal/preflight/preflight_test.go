package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splitaudit/internal/testsupport"
)

func TestCheckDataRoot_OK(t *testing.T) {
	result := CheckDataRoot(t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDataRoot_NotExist(t *testing.T) {
	result := CheckDataRoot(filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDataRoot_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDataRoot(f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDataRoot_Unconfigured(t *testing.T) {
	result := CheckDataRoot("  ")
	if result.Passed || result.Detail != "not configured" {
		t.Fatalf("result = %+v", result)
	}
}

func TestCheckSplit_CountsSampleDirs(t *testing.T) {
	root := t.TempDir()
	for _, id := range []string{"a", "b", "c"} {
		if err := os.MkdirAll(filepath.Join(root, "train", id), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// Loose files are not samples.
	if err := os.WriteFile(filepath.Join(root, "train", "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := CheckSplit(root, "train")
	if !result.Passed || !result.Optional {
		t.Fatalf("result = %+v", result)
	}
	if result.Detail != "3 sample directories" {
		t.Errorf("detail = %q", result.Detail)
	}
}

func TestCheckSplit_Missing(t *testing.T) {
	result := CheckSplit(t.TempDir(), "val")
	if result.Passed {
		t.Fatal("expected failure for missing split")
	}
	if !result.Optional {
		t.Fatal("missing splits must not block the audit")
	}
}

func TestCheckOutputDir_MissingDirWillBeCreated(t *testing.T) {
	output := filepath.Join(t.TempDir(), "reports", "report.json")
	result := CheckOutputDir(output)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Errorf("detail = %q", result.Detail)
	}
}

func TestCheckOutputDir_Writable(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.json")
	result := CheckOutputDir(output)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckFFprobe_Found(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	result := CheckFFprobe("ffprobe")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result.Detail != stub {
		t.Errorf("detail = %q, want resolved path %q", result.Detail, stub)
	}
}

func TestCheckFFprobe_Missing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	result := CheckFFprobe("ffprobe")
	if result.Passed {
		t.Fatal("expected failure when binary is absent")
	}
	if !result.Optional {
		t.Fatal("a missing probe must not block the audit")
	}
}

func TestRunAllAndFailed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	for _, split := range []string{"train", "val"} {
		if err := os.MkdirAll(filepath.Join(cfg.Dataset.Root, split), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", t.TempDir()) // no ffprobe anywhere

	results := RunAll(cfg)
	// Data root + three splits + output dir + ffprobe.
	if len(results) != 6 {
		t.Fatalf("results = %d: %+v", len(results), results)
	}
	// The missing test split and the missing probe are optional failures.
	if Failed(results) {
		t.Fatalf("optional failures must not fail preflight: %+v", results)
	}

	cfg.Dataset.Root = filepath.Join(cfg.Dataset.Root, "gone")
	if !Failed(RunAll(cfg)) {
		t.Fatal("missing data root must fail preflight")
	}
}

func TestRunAllWithStubbedProbe(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	if err := os.MkdirAll(filepath.Join(cfg.Dataset.Root, "train"), 0o755); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(testsupport.BaseDir(cfg), "bin", "ffprobe")
	found := false
	for _, r := range RunAll(cfg) {
		if r.Name != "FFprobe" {
			continue
		}
		found = true
		if !r.Passed {
			t.Errorf("stubbed ffprobe not detected: %+v", r)
		}
		if r.Detail != want {
			t.Errorf("detail = %q, want %q", r.Detail, want)
		}
	}
	if !found {
		t.Fatal("no ffprobe check in results")
	}
}

func TestRunAllSkipsProbeWhenDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t,
		testsupport.WithSplits("train", "holdout"),
		testsupport.WithProbeDisabled())
	if err := os.MkdirAll(cfg.Dataset.Root, 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(cfg)
	// Data root + two splits + output dir, no probe check.
	if len(results) != 4 {
		t.Fatalf("results = %d: %+v", len(results), results)
	}
	for _, r := range results {
		if r.Name == "FFprobe" {
			t.Fatalf("probe check ran despite probe.enabled = false: %+v", r)
		}
	}
}
