package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteJSON serializes the report as indented JSON to path, creating parent
// directories as needed.
func WriteJSON(path string, rep *Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// csvHeader is the column order of the findings CSV export.
var csvHeader = []string{
	"type", "split_pair", "split", "modality", "hash",
	"identities", "samples_a", "samples_b", "fingerprint", "sample_count",
}

// WriteCSV exports one row per finding. Multi-valued columns are joined
// with ";" so the file stays one row per finding.
func WriteCSV(path string, rep *Report) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create csv directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, finding := range rep.Findings {
		row := []string{
			finding.Type,
			strings.Join(finding.SplitPair, ";"),
			finding.Split,
			finding.Modality,
			finding.Hash,
			strings.Join(finding.Identities, ";"),
			strings.Join(finding.SamplesA, ";"),
			strings.Join(finding.SamplesB, ";"),
			finding.Fingerprint,
			strconv.Itoa(finding.SampleCount),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return file.Close()
}
