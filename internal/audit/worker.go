package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"splitaudit/internal/dataset"
	"splitaudit/internal/hashing"
	"splitaudit/internal/probe"
)

// sampleResult carries one worker's extraction output to the reducer.
// Fields stay zero for inputs that were absent or failed; the matching
// failures are listed in issues.
type sampleResult struct {
	sample *dataset.Sample

	metadata map[string]any
	identity string

	videoHash  string
	videoBytes int64
	audioHash  string
	audioBytes int64

	videoFP *dataset.VideoFingerprint
	audioFP *dataset.AudioFingerprint

	issues []issue
}

// processSample runs the full extraction pipeline for one sample. On
// context cancellation it returns whatever was gathered so far; the
// reducer discards the run afterwards.
func (a *Auditor) processSample(ctx context.Context, s *dataset.Sample) sampleResult {
	res := sampleResult{sample: s}

	if s.MetaPath != "" {
		if meta, err := readMetadata(s.MetaPath); err != nil {
			res.issues = append(res.issues, issue{
				kind:   issueSampleLoad,
				split:  s.Split,
				sample: s.ID,
				detail: err.Error(),
			})
		} else {
			res.metadata = meta
		}
	}
	res.identity = dataset.ResolveIdentity(res.metadata, s.ID)

	if a.opts.VerifyContainers {
		res.issues = append(res.issues, a.verifyContainer(s, s.VideoPath, probe.ModalityVideo)...)
		if s.AudioPath != "" {
			res.issues = append(res.issues, a.verifyContainer(s, s.AudioPath, probe.ModalityAudio)...)
		}
	}

	if digest, n, err := hashing.FileSHA256(ctx, s.VideoPath); err != nil {
		if ctx.Err() != nil {
			return res
		}
		res.issues = append(res.issues, issue{kind: issueHash, split: s.Split, sample: s.ID, detail: err.Error()})
	} else {
		res.videoHash, res.videoBytes = digest, n
	}
	if s.AudioPath != "" {
		if digest, n, err := hashing.FileSHA256(ctx, s.AudioPath); err != nil {
			if ctx.Err() != nil {
				return res
			}
			res.issues = append(res.issues, issue{kind: issueHash, split: s.Split, sample: s.ID, detail: err.Error()})
		} else {
			res.audioHash, res.audioBytes = digest, n
		}
	}

	if a.opts.ProbeAvailable {
		if fp, err := a.opts.Prober.ProbeVideo(ctx, s.VideoPath); err != nil {
			if ctx.Err() != nil {
				return res
			}
			res.issues = append(res.issues, issue{kind: issueProbe, split: s.Split, sample: s.ID, detail: err.Error()})
		} else {
			res.videoFP = fp
		}
		if s.AudioPath != "" {
			if fp, err := a.opts.Prober.ProbeAudio(ctx, s.AudioPath); err != nil {
				if ctx.Err() != nil {
					return res
				}
				res.issues = append(res.issues, issue{kind: issueProbe, split: s.Split, sample: s.ID, detail: err.Error()})
			} else {
				res.audioFP = fp
			}
		}
	}

	return res
}

// verifyContainer cross-checks a file's magic bytes against the modality
// its extension promised. Mismatches are recoverable findings about data
// quality, never fatal.
func (a *Auditor) verifyContainer(s *dataset.Sample, path string, want probe.Modality) []issue {
	ok, detected, err := probe.VerifyContainer(path, want)
	if err != nil {
		return []issue{{
			kind:   issueContainer,
			split:  s.Split,
			sample: s.ID,
			detail: err.Error(),
		}}
	}
	if ok {
		return nil
	}
	return []issue{{
		kind:   issueContainer,
		split:  s.Split,
		sample: s.ID,
		detail: fmt.Sprintf("%s has a %s extension but its header matches %s", filepath.Base(path), want, detected),
	}}
}

// readMetadata parses a sample's sidecar metadata file. A missing or
// malformed file degrades identity resolution to the directory-name
// heuristic, it never drops the sample.
func readMetadata(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dataset.MetaFileName, err)
	}
	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", dataset.MetaFileName, err)
	}
	return meta, nil
}
