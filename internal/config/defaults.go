package config

const (
	defaultOutput                = "report.json"
	defaultClusterThreshold      = 50
	defaultProbeBinary           = "ffprobe"
	defaultNotifyRequestTimeout  = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultConfigLocation        = "~/.config/splitaudit/config.toml"
	defaultProjectConfigFileName = "splitaudit.toml"
)

// defaultSplits is the canonical partition order when the file and flags are
// silent. Copied on use so callers cannot mutate the shared slice.
var defaultSplits = []string{"train", "val", "test"}

// Default returns the built-in configuration used before any file or flag
// overrides apply.
func Default() Config {
	return Config{
		Dataset: Dataset{
			Splits: append([]string(nil), defaultSplits...),
			Output: defaultOutput,
		},
		Audit: Audit{
			Workers:          0,
			ClusterThreshold: defaultClusterThreshold,
		},
		Probe: Probe{
			Enabled:       true,
			FFprobeBinary: defaultProbeBinary,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
