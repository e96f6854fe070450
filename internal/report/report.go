package report

import (
	"sort"
	"strings"
)

// RiskLevel grades the leakage risk of an audited dataset.
type RiskLevel string

const (
	RiskNone     RiskLevel = "NONE"
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// ExitFatal is the exit code for runs that failed before producing a
// report (configuration errors, write failures, cancellation). Kept
// distinct from every risk-derived code so failures never masquerade as
// clean audits.
const ExitFatal = 3

// LevelForIssueCount maps a finding count onto a risk level using a fixed
// monotone table.
func LevelForIssueCount(issues int) RiskLevel {
	switch {
	case issues <= 0:
		return RiskNone
	case issues == 1:
		return RiskLow
	case issues <= 4:
		return RiskMedium
	case issues <= 9:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// ExitCode maps a risk level onto the process exit code contract:
// NONE/LOW pass, MEDIUM/HIGH ask for review, CRITICAL must be fixed.
func (l RiskLevel) ExitCode() int {
	switch l {
	case RiskMedium, RiskHigh:
		return 1
	case RiskCritical:
		return 2
	default:
		return 0
	}
}

// Finding discriminator values.
const (
	FindingIdentityOverlap = "identity_overlap"
	FindingHashCollision   = "hash_collision"
	FindingMetadataCluster = "metadata_cluster"
)

// Finding is one detected integrity issue. Type selects which of the
// optional fields are populated:
//
//	identity_overlap: SplitPair, Identities
//	hash_collision:   SplitPair, Modality, Hash, SamplesA, SamplesB
//	metadata_cluster: Split, Fingerprint, SampleCount
type Finding struct {
	Type        string   `json:"type"`
	SplitPair   []string `json:"split_pair,omitempty"`
	Identities  []string `json:"identities,omitempty"`
	Modality    string   `json:"modality,omitempty"`
	Hash        string   `json:"hash,omitempty"`
	SamplesA    []string `json:"samples_a,omitempty"`
	SamplesB    []string `json:"samples_b,omitempty"`
	Split       string   `json:"split,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	SampleCount int      `json:"sample_count,omitempty"`
}

// RiskAssessment summarizes the findings into a single grade.
type RiskAssessment struct {
	Level          RiskLevel      `json:"level"`
	IssuesFound    int            `json:"issues_found"`
	IssueBreakdown map[string]int `json:"issue_breakdown"`
}

// Environment records where the audit ran.
type Environment struct {
	Hostname      string `json:"hostname,omitempty"`
	OS            string `json:"os,omitempty"`
	Platform      string `json:"platform,omitempty"`
	KernelVersion string `json:"kernel_version,omitempty"`
	CPUCount      int    `json:"cpu_count"`
	GoVersion     string `json:"go_version"`
}

// Report is the complete structured output of one audit run.
type Report struct {
	RunID            string         `json:"run_id"`
	Timestamp        string         `json:"timestamp"`
	ElapsedSeconds   float64        `json:"elapsed_seconds"`
	DatasetRoot      string         `json:"dataset_root"`
	Splits           []string       `json:"splits"`
	Environment      Environment    `json:"environment"`
	SampleStatistics map[string]int `json:"sample_statistics"`
	TotalSamples     int            `json:"total_samples"`
	SkippedSamples   int            `json:"skipped_samples"`
	BytesHashed      int64          `json:"bytes_hashed"`
	ProbeAvailable   bool           `json:"probe_available"`
	RiskAssessment   RiskAssessment `json:"risk_assessment"`
	Findings         []Finding      `json:"findings"`
	Errors           []string       `json:"errors,omitempty"`
	Recommendations  []string       `json:"recommendations,omitempty"`
}

// SortFindings orders findings deterministically so identical datasets
// produce byte-identical reports: by type, then split pair, then split,
// modality, hash, and fingerprint.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		ap := strings.Join(a.SplitPair, "|")
		bp := strings.Join(b.SplitPair, "|")
		if ap != bp {
			return ap < bp
		}
		if a.Split != b.Split {
			return a.Split < b.Split
		}
		if a.Modality != b.Modality {
			return a.Modality < b.Modality
		}
		if a.Hash != b.Hash {
			return a.Hash < b.Hash
		}
		return a.Fingerprint < b.Fingerprint
	})
}
