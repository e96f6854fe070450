package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// exportSchema is applied on every export. Additive only: existing runs in
// a reused database file stay queryable next to the new one.
var exportSchema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
        run_id TEXT PRIMARY KEY,
        timestamp TEXT NOT NULL,
        dataset_root TEXT NOT NULL,
        risk_level TEXT NOT NULL,
        issues_found INTEGER NOT NULL,
        total_samples INTEGER NOT NULL,
        skipped_samples INTEGER NOT NULL,
        bytes_hashed INTEGER NOT NULL,
        elapsed_seconds REAL NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS findings (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
        type TEXT NOT NULL,
        split_pair TEXT,
        split TEXT,
        modality TEXT,
        hash TEXT,
        identities TEXT,
        samples_a TEXT,
        samples_b TEXT,
        fingerprint TEXT,
        sample_count INTEGER
    )`,
	`CREATE TABLE IF NOT EXISTS run_errors (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
        message TEXT NOT NULL
    )`,
}

// ExportSQLite writes the report into a SQLite database at path. The
// database is an export artifact: the audit writes it and never reads it.
func ExportSQLite(ctx context.Context, path string, rep *Report) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			return fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range exportSchema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap export schema: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (
            run_id, timestamp, dataset_root, risk_level, issues_found,
            total_samples, skipped_samples, bytes_hashed, elapsed_seconds
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID,
		rep.Timestamp,
		rep.DatasetRoot,
		string(rep.RiskAssessment.Level),
		rep.RiskAssessment.IssuesFound,
		rep.TotalSamples,
		rep.SkippedSamples,
		rep.BytesHashed,
		rep.ElapsedSeconds,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, finding := range rep.Findings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO findings (
                run_id, type, split_pair, split, modality, hash,
                identities, samples_a, samples_b, fingerprint, sample_count
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rep.RunID,
			finding.Type,
			strings.Join(finding.SplitPair, "|"),
			finding.Split,
			finding.Modality,
			finding.Hash,
			strings.Join(finding.Identities, "|"),
			strings.Join(finding.SamplesA, "|"),
			strings.Join(finding.SamplesB, "|"),
			finding.Fingerprint,
			finding.SampleCount,
		); err != nil {
			return fmt.Errorf("insert finding: %w", err)
		}
	}

	for _, message := range rep.Errors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_errors (run_id, message) VALUES (?, ?)`,
			rep.RunID, message,
		); err != nil {
			return fmt.Errorf("insert run error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return db.Close()
}
