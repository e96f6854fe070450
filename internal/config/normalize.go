package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeDataset(); err != nil {
		return err
	}
	if err := c.normalizeExport(); err != nil {
		return err
	}
	c.normalizeProbe()
	c.normalizeNotifications()
	return c.normalizeLogging()
}

func (c *Config) normalizeDataset() error {
	var err error
	c.Dataset.Root = strings.TrimSpace(c.Dataset.Root)
	if c.Dataset.Root != "" {
		if c.Dataset.Root, err = expandPath(c.Dataset.Root); err != nil {
			return fmt.Errorf("dataset.root: %w", err)
		}
	}

	if strings.TrimSpace(c.Dataset.Output) == "" {
		c.Dataset.Output = defaultOutput
	}
	if c.Dataset.Output, err = expandPath(c.Dataset.Output); err != nil {
		return fmt.Errorf("dataset.output: %w", err)
	}

	c.Dataset.Splits = NormalizeSplits(c.Dataset.Splits)
	if len(c.Dataset.Splits) == 0 {
		c.Dataset.Splits = append([]string(nil), defaultSplits...)
	}
	return nil
}

func (c *Config) normalizeExport() error {
	var err error
	c.Export.CSV = strings.TrimSpace(c.Export.CSV)
	if c.Export.CSV != "" {
		if c.Export.CSV, err = expandPath(c.Export.CSV); err != nil {
			return fmt.Errorf("export.csv: %w", err)
		}
	}
	c.Export.SQLite = strings.TrimSpace(c.Export.SQLite)
	if c.Export.SQLite != "" {
		if c.Export.SQLite, err = expandPath(c.Export.SQLite); err != nil {
			return fmt.Errorf("export.sqlite: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeProbe() {
	c.Probe.FFprobeBinary = strings.TrimSpace(c.Probe.FFprobeBinary)
	if c.Probe.FFprobeBinary == "" {
		c.Probe.FFprobeBinary = defaultProbeBinary
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("SPLITAUDIT_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.LogDir = strings.TrimSpace(c.Logging.LogDir)
	if c.Logging.LogDir != "" {
		var err error
		if c.Logging.LogDir, err = expandPath(c.Logging.LogDir); err != nil {
			return fmt.Errorf("logging.log_dir: %w", err)
		}
	}
	return nil
}

// NormalizeSplits trims split names, drops empties, and removes duplicates
// while preserving the configured order.
func NormalizeSplits(splits []string) []string {
	cleaned := make([]string, 0, len(splits))
	seen := make(map[string]struct{}, len(splits))
	for _, split := range splits {
		name := strings.TrimSpace(split)
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}
	return cleaned
}
