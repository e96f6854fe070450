package audit

import (
	"fmt"
	"strings"

	"splitaudit/internal/report"
)

// maxListedIdentities caps how many identity names a single
// recommendation spells out before eliding the rest.
const maxListedIdentities = 5

// assess converts the finding list into the report's risk assessment.
// The breakdown always carries all three finding types so downstream
// consumers can rely on the keys being present.
func assess(findings []report.Finding) report.RiskAssessment {
	breakdown := map[string]int{
		report.FindingIdentityOverlap: 0,
		report.FindingHashCollision:   0,
		report.FindingMetadataCluster: 0,
	}
	for _, f := range findings {
		breakdown[f.Type]++
	}
	return report.RiskAssessment{
		Level:          report.LevelForIssueCount(len(findings)),
		IssuesFound:    len(findings),
		IssueBreakdown: breakdown,
	}
}

// recommendations renders one actionable line per problem area, in the
// same order the sorted findings present them.
func recommendations(findings []report.Finding) []string {
	type pairKey struct {
		a, b string
	}
	hashCounts := make(map[pairKey]int)
	var hashOrder []pairKey
	clusterCounts := make(map[string]int)
	var clusterOrder []string

	for _, f := range findings {
		switch f.Type {
		case report.FindingHashCollision:
			key := pairKey{a: f.SplitPair[0], b: f.SplitPair[1]}
			if _, seen := hashCounts[key]; !seen {
				hashOrder = append(hashOrder, key)
			}
			hashCounts[key]++
		case report.FindingMetadataCluster:
			if _, seen := clusterCounts[f.Split]; !seen {
				clusterOrder = append(clusterOrder, f.Split)
			}
			clusterCounts[f.Split]++
		}
	}

	var recs []string
	for _, key := range hashOrder {
		n := hashCounts[key]
		noun := "files"
		if n == 1 {
			noun = "file"
		}
		recs = append(recs, fmt.Sprintf("%d byte-identical media %s shared between %s/%s: remove the duplicates from one split", n, noun, key.a, key.b))
	}
	for _, f := range findings {
		if f.Type != report.FindingIdentityOverlap {
			continue
		}
		listed := f.Identities
		extra := 0
		if len(listed) > maxListedIdentities {
			extra = len(listed) - maxListedIdentities
			listed = listed[:maxListedIdentities]
		}
		msg := fmt.Sprintf("Identity overlap detected between %s/%s: reallocate samples for identities %s",
			f.SplitPair[0], f.SplitPair[1], strings.Join(listed, ", "))
		if extra > 0 {
			msg += fmt.Sprintf(" (+%d more)", extra)
		}
		recs = append(recs, msg)
	}
	for _, split := range clusterOrder {
		n := clusterCounts[split]
		noun := "groups"
		if n == 1 {
			noun = "group"
		}
		recs = append(recs, fmt.Sprintf("%s: %d fingerprint %s over the cluster threshold: verify the samples were collected independently", split, n, noun))
	}
	return recs
}
