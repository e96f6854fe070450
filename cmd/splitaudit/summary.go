package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"splitaudit/internal/config"
	"splitaudit/internal/report"
)

// renderSummary prints the human-readable outcome after the report has
// been written. The report file stays the source of truth; this is the
// terminal digest.
func renderSummary(out io.Writer, rep *report.Report, cfg *config.Config, outputPath string) {
	colorize := shouldColorize(out)

	level := rep.RiskAssessment.Level
	noun := "issues"
	if rep.RiskAssessment.IssuesFound == 1 {
		noun = "issue"
	}
	banner := fmt.Sprintf("Risk: %s (%d %s)", level, rep.RiskAssessment.IssuesFound, noun)
	if colorize {
		banner = riskColor(level).Sprint(banner)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, banner)

	b := rep.RiskAssessment.IssueBreakdown
	fmt.Fprintf(out, "  identity overlaps: %d, hash collisions: %d, metadata clusters: %d\n",
		b[report.FindingIdentityOverlap], b[report.FindingHashCollision], b[report.FindingMetadataCluster])
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(rep.Splits))
	for _, split := range rep.Splits {
		rows = append(rows, []string{split, strconv.Itoa(rep.SampleStatistics[split])})
	}
	footer := []string{"total", strconv.Itoa(rep.TotalSamples)}
	fmt.Fprintln(out, renderTable([]string{"Split", "Samples"}, rows, footer, []columnAlignment{alignLeft, alignRight}))

	fmt.Fprintf(out, "Hashed %s of media in %.1fs\n", humanize.Bytes(uint64(rep.BytesHashed)), rep.ElapsedSeconds)
	if rep.SkippedSamples > 0 {
		noun := "directories"
		if rep.SkippedSamples == 1 {
			noun = "directory"
		}
		fmt.Fprintf(out, "Skipped %d invalid sample %s\n", rep.SkippedSamples, noun)
	}
	if !rep.ProbeAvailable {
		fmt.Fprintln(out, "Fingerprint checks: skipped (ffprobe unavailable)")
	}
	if n := len(rep.Errors); n > 0 {
		fmt.Fprintf(out, "Recoverable errors: %d (details in the report)\n", n)
	}

	if len(rep.Recommendations) > 0 {
		const maxShown = 5
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Recommendations:")
		shown := rep.Recommendations
		if len(shown) > maxShown {
			shown = shown[:maxShown]
		}
		for _, rec := range shown {
			fmt.Fprintf(out, "  - %s\n", rec)
		}
		if extra := len(rep.Recommendations) - maxShown; extra > 0 {
			fmt.Fprintf(out, "  (+%d more in the report)\n", extra)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Report written to %s\n", outputPath)
	if cfg.Export.CSV != "" {
		fmt.Fprintf(out, "Findings CSV written to %s\n", cfg.Export.CSV)
	}
	if cfg.Export.SQLite != "" {
		fmt.Fprintf(out, "Run recorded in %s\n", cfg.Export.SQLite)
	}
}
