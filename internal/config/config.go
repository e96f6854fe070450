package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Dataset locates the dataset snapshot and the report destination.
type Dataset struct {
	Root   string   `toml:"root" yaml:"root"`
	Splits []string `toml:"splits" yaml:"splits"`
	Output string   `toml:"output" yaml:"output"`
}

// Audit controls the parallel analysis phase.
type Audit struct {
	Workers          int  `toml:"workers" yaml:"workers"`
	ClusterThreshold int  `toml:"cluster_threshold" yaml:"cluster_threshold"`
	TimeoutSeconds   int  `toml:"timeout_seconds" yaml:"timeout_seconds"`
	VerifyContainers bool `toml:"verify_containers" yaml:"verify_containers"`
}

// Probe configures encoding fingerprint extraction.
type Probe struct {
	Enabled       bool   `toml:"enabled" yaml:"enabled"`
	FFprobeBinary string `toml:"ffprobe_binary" yaml:"ffprobe_binary"`
}

// Export names optional secondary report outputs.
type Export struct {
	CSV    string `toml:"csv" yaml:"csv"`
	SQLite string `toml:"sqlite" yaml:"sqlite"`
}

// Notifications configures the ntfy completion push.
type Notifications struct {
	NtfyTopic             string `toml:"ntfy_topic" yaml:"ntfy_topic"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds" yaml:"request_timeout_seconds"`
}

// Logging selects the log format, level, and optional file destination.
type Logging struct {
	Format string `toml:"format" yaml:"format"`
	Level  string `toml:"level" yaml:"level"`
	LogDir string `toml:"log_dir" yaml:"log_dir"`
}

// Config encapsulates all configuration values for splitaudit.
//
// Each section maps onto the subsystem it configures:
//   - Dataset: snapshot root, split order, report destination
//   - Audit: worker pool sizing, cluster threshold, container verification
//   - Probe: ffprobe availability and binary override
//   - Export: optional CSV and SQLite findings exports
//   - Notifications: ntfy completion push settings
//   - Logging: log format, level, and optional log directory
type Config struct {
	Dataset       Dataset       `toml:"dataset" yaml:"dataset"`
	Audit         Audit         `toml:"audit" yaml:"audit"`
	Probe         Probe         `toml:"probe" yaml:"probe"`
	Export        Export        `toml:"export" yaml:"export"`
	Notifications Notifications `toml:"notifications" yaml:"notifications"`
	Logging       Logging       `toml:"logging" yaml:"logging"`
}

// DefaultConfigPath resolves the conventional per-user configuration
// location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigLocation)
}

// Load locates, parses, and validates a configuration file. TOML is the
// default format; files ending in .yaml or .yml decode as YAML. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		switch strings.ToLower(filepath.Ext(resolvedPath)) {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, "", false, fmt.Errorf("parse config: %w", err)
			}
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, "", false, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath picks the config file for this invocation. An explicit
// path wins even when absent (the caller decides how to report that);
// otherwise the per-user location is preferred over ./splitaudit.toml.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		switch _, statErr := os.Stat(expanded); {
		case statErr == nil:
			return expanded, true, nil
		case errors.Is(statErr, fs.ErrNotExist):
			return expanded, false, nil
		default:
			return "", false, fmt.Errorf("stat config: %w", statErr)
		}
	}

	userPath, err := expandPath(defaultConfigLocation)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(defaultProjectConfigFileName)
	if err != nil {
		return "", false, err
	}

	for _, candidate := range []string{userPath, projectPath} {
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

// EnsureDirectories creates directories the audit writes into. The log
// directory is optional and only created when configured.
func (c *Config) EnsureDirectories() error {
	if dir := strings.TrimSpace(c.Logging.LogDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Dataset.Output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}
	return nil
}

// ProbeBinary returns the ffprobe executable used for fingerprint extraction.
func (c *Config) ProbeBinary() string {
	binary := strings.TrimSpace(c.Probe.FFprobeBinary)
	if binary == "" {
		return defaultProbeBinary
	}
	return binary
}

// TimeoutSeconds returns the configured run timeout, zero meaning none.
func (c *Config) TimeoutSeconds() int {
	if c.Audit.TimeoutSeconds < 0 {
		return 0
	}
	return c.Audit.TimeoutSeconds
}

func expandPath(p string) (string, error) {
	if p == "" {
		return p, nil
	}
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if p == "~" {
			p = home
		} else {
			p = filepath.Join(home, p[2:])
		}
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("absolute path for %q: %w", p, err)
	}
	return abs, nil
}

// ExpandPath applies tilde and relative-path expansion for callers outside
// this package.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
