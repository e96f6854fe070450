package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"splitaudit/internal/testsupport"
)

func TestStatusCommandRendersChecks(t *testing.T) {
	isolateEnv(t)

	base := t.TempDir()
	root := filepath.Join(base, "dataset")
	testsupport.WriteDataset(t, root, []string{"train", "val"}, []testsupport.Sample{
		{Split: "train", ID: "a_01"},
		{Split: "train", ID: "a_02"},
		{Split: "val", ID: "b_01"},
	})

	stdout, stderr, err := runCLI(t, "status", "--data-root", root)
	if err != nil {
		t.Fatalf("execute: %v (stderr: %s)", err, stderr)
	}
	requireContains(t, stdout, "splitaudit status")
	requireContains(t, stdout, "Data root:")
	requireContains(t, stdout, "Split train:")
	requireContains(t, stdout, "2 sample directories")
	// The test split directory does not exist: a warning, not an error.
	requireContains(t, stdout, "Split test:")
	requireContains(t, stdout, "[WARN]")
	requireContains(t, stdout, "FFprobe:")
	requireContains(t, stdout, "Notifications:")
	requireContains(t, stdout, "disabled")
}

func TestStatusCommandJSON(t *testing.T) {
	isolateEnv(t)

	base := t.TempDir()
	root := filepath.Join(base, "dataset")
	testsupport.WriteDataset(t, root, []string{"train", "val", "test"}, nil)

	stdout, stderr, err := runCLI(t, "status", "--data-root", root, "--json")
	if err != nil {
		t.Fatalf("execute: %v (stderr: %s)", err, stderr)
	}

	var payload statusPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("decode status json: %v\n%s", err, stdout)
	}
	if payload.ConfigPath == "" {
		t.Error("config path missing from status payload")
	}
	if len(payload.Checks) == 0 {
		t.Error("no checks in status payload")
	}
	found := false
	for _, check := range payload.Checks {
		if check.Name == "Data root" && check.Passed {
			found = true
		}
	}
	if !found {
		t.Errorf("data root check missing or failed: %+v", payload.Checks)
	}
	if payload.NotificationsEnabled {
		t.Error("notifications should be disabled by default")
	}
}
