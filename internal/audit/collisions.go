package audit

import (
	"sort"

	"splitaudit/internal/dataset"
	"splitaudit/internal/report"
)

// occurrence locates one sample that contributed a hash to the index.
type occurrence struct {
	split  string
	sample string
}

// collisionIndex aggregates per-sample extraction output into the global
// maps collision detection runs over. Only the reducer goroutine touches
// it, so no locking is needed.
type collisionIndex struct {
	videoHashes map[string][]occurrence
	audioHashes map[string][]occurrence
	identities  map[string]map[string]struct{}
}

func newCollisionIndex() *collisionIndex {
	return &collisionIndex{
		videoHashes: make(map[string][]occurrence),
		audioHashes: make(map[string][]occurrence),
		identities:  make(map[string]map[string]struct{}),
	}
}

// addSample records the sample's hashes and resolved identity. Samples
// whose extraction partially failed contribute whatever fields they have.
func (ci *collisionIndex) addSample(s *dataset.Sample) {
	if s.VideoHash != "" {
		ci.videoHashes[s.VideoHash] = append(ci.videoHashes[s.VideoHash], occurrence{split: s.Split, sample: s.ID})
	}
	if s.AudioHash != "" {
		ci.audioHashes[s.AudioHash] = append(ci.audioHashes[s.AudioHash], occurrence{split: s.Split, sample: s.ID})
	}
	if s.Identity != "" {
		set := ci.identities[s.Identity]
		if set == nil {
			set = make(map[string]struct{})
			ci.identities[s.Identity] = set
		}
		set[s.Split] = struct{}{}
	}
}

// findings converts the accumulated index into cross-split findings.
// Every split pair is reported once, in the dataset's configured order.
func (ci *collisionIndex) findings(ds *dataset.Dataset) []report.Finding {
	findings := hashCollisions(ds, ci.videoHashes, "video")
	findings = append(findings, hashCollisions(ds, ci.audioHashes, "audio")...)
	return append(findings, identityOverlaps(ds, ci.identities)...)
}

// splitLess orders split names by their configured dataset position.
// Names outside the configuration sort last, lexicographically.
func splitLess(ds *dataset.Dataset, x, y string) bool {
	xi, yi := ds.SplitIndex(x), ds.SplitIndex(y)
	switch {
	case xi < 0 && yi < 0:
		return x < y
	case xi < 0:
		return false
	case yi < 0:
		return true
	default:
		return xi < yi
	}
}

func hashCollisions(ds *dataset.Dataset, index map[string][]occurrence, modality string) []report.Finding {
	var findings []report.Finding
	for hash, occs := range index {
		bySplit := make(map[string][]string)
		for _, occ := range occs {
			bySplit[occ.split] = append(bySplit[occ.split], occ.sample)
		}
		if len(bySplit) < 2 {
			continue
		}
		splits := make([]string, 0, len(bySplit))
		for split := range bySplit {
			splits = append(splits, split)
		}
		sort.Slice(splits, func(i, j int) bool { return splitLess(ds, splits[i], splits[j]) })
		for i := 0; i < len(splits); i++ {
			for j := i + 1; j < len(splits); j++ {
				samplesA := append([]string(nil), bySplit[splits[i]]...)
				samplesB := append([]string(nil), bySplit[splits[j]]...)
				sort.Strings(samplesA)
				sort.Strings(samplesB)
				findings = append(findings, report.Finding{
					Type:      report.FindingHashCollision,
					SplitPair: []string{splits[i], splits[j]},
					Modality:  modality,
					Hash:      hash,
					SamplesA:  samplesA,
					SamplesB:  samplesB,
				})
			}
		}
	}
	return findings
}

func identityOverlaps(ds *dataset.Dataset, identities map[string]map[string]struct{}) []report.Finding {
	type pairKey struct {
		a, b string
	}
	byPair := make(map[pairKey]map[string]struct{})
	for identity, splitSet := range identities {
		if len(splitSet) < 2 {
			continue
		}
		splits := make([]string, 0, len(splitSet))
		for split := range splitSet {
			splits = append(splits, split)
		}
		sort.Slice(splits, func(i, j int) bool { return splitLess(ds, splits[i], splits[j]) })
		for i := 0; i < len(splits); i++ {
			for j := i + 1; j < len(splits); j++ {
				key := pairKey{a: splits[i], b: splits[j]}
				set := byPair[key]
				if set == nil {
					set = make(map[string]struct{})
					byPair[key] = set
				}
				set[identity] = struct{}{}
			}
		}
	}

	findings := make([]report.Finding, 0, len(byPair))
	for key, set := range byPair {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		findings = append(findings, report.Finding{
			Type:       report.FindingIdentityOverlap,
			SplitPair:  []string{key.a, key.b},
			Identities: ids,
		})
	}
	return findings
}
