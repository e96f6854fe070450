package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"splitaudit/internal/config"
	"splitaudit/internal/preflight"
	"splitaudit/internal/report"
)

type statusCheck struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

type statusPayload struct {
	ConfigPath           string             `json:"config_path"`
	Environment          report.Environment `json:"environment"`
	Checks               []statusCheck      `json:"checks"`
	NotificationsEnabled bool               `json:"notifications_enabled"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var dataRoot string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration, host, and capability status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data-root") {
				root, err := config.ExpandPath(dataRoot)
				if err != nil {
					return err
				}
				cfg.Dataset.Root = root
			}

			results := preflight.RunAll(cfg)
			env := report.CaptureEnvironment()
			notificationsEnabled := strings.TrimSpace(cfg.Notifications.NtfyTopic) != ""

			if jsonOut {
				checks := make([]statusCheck, 0, len(results))
				for _, r := range results {
					checks = append(checks, statusCheck{
						Name:     r.Name,
						Passed:   r.Passed,
						Optional: r.Optional,
						Detail:   r.Detail,
					})
				}
				return writeJSON(cmd, statusPayload{
					ConfigPath:           ctx.configPath,
					Environment:          env,
					Checks:               checks,
					NotificationsEnabled: notificationsEnabled,
				})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("splitaudit status", colorize) {
				fmt.Fprintln(out, line)
			}

			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail = fmt.Sprintf("%s (not found, using defaults)", ctx.configPath)
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, configDetail, colorize))
			fmt.Fprintln(out, renderStatusLine("Host", statusInfo,
				fmt.Sprintf("%s (%s, %d CPUs)", env.Hostname, env.Platform, env.CPUCount), colorize))

			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
					if r.Optional {
						kind = statusWarn
					}
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}

			notifications := "disabled"
			if notificationsEnabled {
				notifications = "enabled"
			}
			fmt.Fprintln(out, renderStatusLine("Notifications", statusInfo, notifications, colorize))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data-root", "", "Dataset root directory")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit status as JSON")
	return cmd
}
