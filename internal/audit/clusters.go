package audit

import (
	"fmt"
	"sort"
	"strings"

	"splitaudit/internal/dataset"
	"splitaudit/internal/report"
)

// fingerprintKey renders the encoding tuple a sample groups under for
// cluster analysis. Components the probe could not determine are dropped;
// a sample with no fingerprint at all returns "" and is not grouped.
func fingerprintKey(s *dataset.Sample) string {
	var parts []string
	if fp := s.VideoFP; fp != nil {
		var video []string
		if fp.Width > 0 && fp.Height > 0 {
			video = append(video, fmt.Sprintf("%dx%d", fp.Width, fp.Height))
		}
		if fp.Codec != "" {
			video = append(video, fp.Codec)
		}
		if fp.FPS != "" {
			video = append(video, fp.FPS)
		}
		if len(video) > 0 {
			parts = append(parts, strings.Join(video, "/"))
		}
	}
	if fp := s.AudioFP; fp != nil {
		var audio []string
		if fp.SampleRate > 0 {
			audio = append(audio, fmt.Sprintf("%dHz", fp.SampleRate))
		}
		if fp.Channels > 0 {
			audio = append(audio, fmt.Sprintf("%dch", fp.Channels))
		}
		if len(audio) > 0 {
			parts = append(parts, strings.Join(audio, "/"))
		}
	}
	return strings.Join(parts, "|")
}

// clusterFindings flags fingerprint groups whose member count strictly
// exceeds threshold. Each split is analyzed independently: uniform encoding
// within one split is suspicious, uniform encoding across the whole dataset
// is usually just the capture pipeline.
func clusterFindings(ds *dataset.Dataset, threshold int) []report.Finding {
	var findings []report.Finding
	for _, split := range ds.Splits {
		groups := make(map[string]int)
		for _, s := range ds.Samples[split] {
			if key := fingerprintKey(s); key != "" {
				groups[key]++
			}
		}
		keys := make([]string, 0, len(groups))
		for key := range groups {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if groups[key] > threshold {
				findings = append(findings, report.Finding{
					Type:        report.FindingMetadataCluster,
					Split:       split,
					Fingerprint: key,
					SampleCount: groups[key],
				})
			}
		}
	}
	return findings
}
