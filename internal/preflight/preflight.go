package preflight

import (
	"splitaudit/internal/config"
)

// Result captures one readiness check outcome.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every applicable check for the given config. Split and
// probe checks are only run when the corresponding setting is present.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDataRoot(cfg.Dataset.Root))
	if cfg.Dataset.Root != "" {
		for _, split := range cfg.Dataset.Splits {
			results = append(results, CheckSplit(cfg.Dataset.Root, split))
		}
	}
	results = append(results, CheckOutputDir(cfg.Dataset.Output))
	if cfg.Probe.Enabled {
		results = append(results, CheckFFprobe(cfg.ProbeBinary()))
	}
	return results
}

// Failed reports whether any required check failed. Optional checks never
// block an audit.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
