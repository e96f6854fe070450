package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "splitaudit",
		Short: "Dataset split integrity auditor",
		Long: `splitaudit checks a train/val/test dataset snapshot for leakage:
subject identities shared across splits, byte-identical media files, and
suspiciously uniform encoding fingerprints. It writes a risk-scored JSON
report and exits nonzero when the findings warrant attention.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (.toml, .yaml, or .yml)")

	rootCmd.AddCommand(newAuditCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
