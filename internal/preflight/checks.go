package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// CheckDataRoot verifies the dataset root exists and is readable. The
// audit never writes into the dataset, so write access is not required.
func CheckDataRoot(root string) Result {
	const name = "Data root"

	if strings.TrimSpace(root) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", root)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", root, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", root)}
	}
	if err := unix.Access(root, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", root, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", root)}
}

// CheckSplit reports whether one split directory exists and how many
// sample directories it holds. Missing splits are optional: the audit
// records them as recoverable errors and continues.
func CheckSplit(root, split string) Result {
	name := fmt.Sprintf("Split %s", split)

	dir := filepath.Join(root, split)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (missing)", dir)}
		}
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: %v)", dir, err)}
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			count++
		}
	}
	noun := "directories"
	if count == 1 {
		noun = "directory"
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%d sample %s", count, noun)}
}

// CheckOutputDir verifies the report destination is writable. A missing
// directory passes: it is created right before the report is written.
func CheckOutputDir(output string) Result {
	const name = "Output directory"

	if strings.TrimSpace(output) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	dir := filepath.Dir(output)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", dir)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", dir, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", dir)}
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", dir, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", dir)}
}

// CheckFFprobe resolves the configured ffprobe binary. Probing is a
// degradable capability, so this check never blocks an audit.
func CheckFFprobe(binary string) Result {
	const name = "FFprobe"

	resolved, err := exec.LookPath(binary)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("binary %q not found (fingerprint checks disabled)", binary)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: resolved}
}
