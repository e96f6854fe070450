package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"splitaudit/internal/audit"
	"splitaudit/internal/config"
	"splitaudit/internal/logging"
	"splitaudit/internal/notify"
	"splitaudit/internal/preflight"
	"splitaudit/internal/probe"
	"splitaudit/internal/report"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var (
		dataRoot         string
		splits           []string
		output           string
		csvPath          string
		sqlitePath       string
		workers          int
		clusterThreshold int
		timeout          time.Duration
		verifyContainers bool
		verbose          bool
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit a dataset snapshot for cross-split leakage",
		Long: `Audit indexes every sample under the data root, hashes the media files,
resolves subject identities, extracts encoding fingerprints when ffprobe
is available, and writes a risk-scored JSON report.

The exit code reflects the outcome: 0 for NONE or LOW risk, 1 for MEDIUM
or HIGH, 2 for CRITICAL, and 3 when the audit itself failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// Explicit flags override file values.
			flags := cmd.Flags()
			if flags.Changed("data-root") {
				cfg.Dataset.Root = dataRoot
			}
			if flags.Changed("splits") {
				cfg.Dataset.Splits = config.NormalizeSplits(splits)
			}
			if flags.Changed("output") {
				cfg.Dataset.Output = output
			}
			if flags.Changed("csv") {
				cfg.Export.CSV = csvPath
			}
			if flags.Changed("sqlite") {
				cfg.Export.SQLite = sqlitePath
			}
			if flags.Changed("workers") {
				cfg.Audit.Workers = workers
			}
			if flags.Changed("cluster-threshold") {
				cfg.Audit.ClusterThreshold = clusterThreshold
			}
			if flags.Changed("timeout") {
				cfg.Audit.TimeoutSeconds = int(timeout.Seconds())
			}
			if flags.Changed("verify-containers") {
				cfg.Audit.VerifyContainers = verifyContainers
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runAudit(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data-root", "", "Dataset root directory")
	cmd.Flags().StringSliceVar(&splits, "splits", nil, "Split directory names in canonical order")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Report destination path")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also export findings as CSV to this path")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also record the run in this SQLite database")
	cmd.Flags().IntVar(&workers, "workers", 0, "Extraction workers (0 selects all CPUs)")
	cmd.Flags().IntVar(&clusterThreshold, "cluster-threshold", 0, "Fingerprint group size above which a cluster is flagged")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the audit after this duration (0 disables)")
	cmd.Flags().BoolVar(&verifyContainers, "verify-containers", false, "Cross-check media headers against their extensions")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runAudit(cmd *cobra.Command, cfg *config.Config) error {
	if strings.TrimSpace(cfg.Dataset.Root) == "" {
		return errors.New("data root is required (set --data-root or dataset.root)")
	}
	root, err := config.ExpandPath(cfg.Dataset.Root)
	if err != nil {
		return err
	}
	cfg.Dataset.Root = root
	outputPath, err := config.ExpandPath(cfg.Dataset.Output)
	if err != nil {
		return err
	}
	cfg.Dataset.Output = outputPath

	if results := preflight.RunAll(cfg); preflight.Failed(results) {
		for _, r := range results {
			if !r.Passed && !r.Optional {
				fmt.Fprintf(cmd.ErrOrStderr(), "preflight: %s: %s\n", r.Name, r.Detail)
			}
		}
		return errors.New("preflight checks failed")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	// One report writer per output path.
	lock := flock.New(outputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire report lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another audit is already writing %s", outputPath)
	}
	defer func() { _ = lock.Unlock() }()

	runCtx := cmd.Context()
	if secs := cfg.TimeoutSeconds(); secs > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, time.Duration(secs)*time.Second)
		defer cancel()
	}

	var prober probe.Prober = probe.NullProber{}
	probeAvailable := false
	if cfg.Probe.Enabled {
		prober, probeAvailable = probe.Detect(cfg.ProbeBinary())
	}

	notifier := notify.NewService(cfg)

	auditor := audit.New(audit.Options{
		DataRoot:         cfg.Dataset.Root,
		Splits:           cfg.Dataset.Splits,
		Workers:          cfg.Audit.Workers,
		ClusterThreshold: cfg.Audit.ClusterThreshold,
		VerifyContainers: cfg.Audit.VerifyContainers,
		Prober:           prober,
		ProbeAvailable:   probeAvailable,
		Logger:           logger,
	})

	rep, err := auditor.Run(runCtx)
	if err != nil {
		notifyFailure(notifier, logger, err, cfg.Dataset.Root)
		return err
	}

	if err := report.WriteJSON(outputPath, rep); err != nil {
		notifyFailure(notifier, logger, err, cfg.Dataset.Root)
		return err
	}
	if csv := cfg.Export.CSV; csv != "" {
		if err := report.WriteCSV(csv, rep); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}
	if db := cfg.Export.SQLite; db != "" {
		if err := report.ExportSQLite(cmd.Context(), db, rep); err != nil {
			return fmt.Errorf("export sqlite: %w", err)
		}
	}

	renderSummary(cmd.OutOrStdout(), rep, cfg, outputPath)

	nctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := notifier.AuditCompleted(nctx, rep); err != nil {
		logger.Warn("completion notification failed", logging.Error(err))
	}

	if code := rep.RiskAssessment.Level.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// notifyFailure pushes a failure notification on a fresh context; the run
// context is often already cancelled when this is called.
func notifyFailure(notifier notify.Service, logger *slog.Logger, runErr error, root string) {
	nctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := notifier.AuditFailed(nctx, runErr, root); err != nil {
		logger.Warn("failure notification failed", logging.Error(err))
	}
}
