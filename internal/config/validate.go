package config

import (
	"errors"
	"strings"
)

// Validate rejects configurations the audit cannot run with.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateAudit(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDataset() error {
	if len(c.Dataset.Splits) == 0 {
		return errors.New("dataset.splits must include at least one split")
	}
	if len(c.Dataset.Splits) < 2 {
		return errors.New("dataset.splits must include at least two splits to audit overlap")
	}
	if strings.TrimSpace(c.Dataset.Output) == "" {
		return errors.New("dataset.output must be set")
	}
	return nil
}

func (c *Config) validateAudit() error {
	if c.Audit.Workers < 0 {
		return errors.New("audit.workers must be >= 0 (0 uses the CPU count)")
	}
	if c.Audit.ClusterThreshold < 1 {
		return errors.New("audit.cluster_threshold must be >= 1")
	}
	if c.Audit.TimeoutSeconds < 0 {
		return errors.New("audit.timeout_seconds must be >= 0 (0 disables the timeout)")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeoutSeconds <= 0 {
		return errors.New("notifications.request_timeout_seconds must be positive")
	}
	return nil
}
