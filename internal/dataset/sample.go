package dataset

// VideoFingerprint captures the encoding parameters of a video stream.
// FPS is kept as the canonical formatted string (three decimals) so that
// grouping by fingerprint is stable across probe invocations.
type VideoFingerprint struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Codec  string `json:"codec"`
	FPS    string `json:"fps"`
}

// AudioFingerprint captures the encoding parameters of an audio stream.
type AudioFingerprint struct {
	SampleRate int `json:"sample_rate"`
	Channels   int `json:"channels"`
}

// Sample is one catalogued dataset entry. Path fields are set during
// indexing; the remaining fields are filled by the parallel extraction
// phase and stay empty when the corresponding input is absent or failed.
type Sample struct {
	ID    string
	Split string
	Dir   string

	VideoPath string
	AudioPath string
	MetaPath  string

	Metadata map[string]any
	Identity string

	VideoHash  string
	AudioHash  string
	VideoBytes int64
	AudioBytes int64

	VideoFP *VideoFingerprint
	AudioFP *AudioFingerprint
}

// Dataset is the ordered catalog of all valid samples, keyed by split.
// Every configured split has an entry, even when it yielded zero samples.
type Dataset struct {
	Root    string
	Splits  []string
	Samples map[string][]*Sample

	// Skipped counts sample directories excluded during indexing.
	Skipped int
}

// SampleCounts returns the number of valid samples per split.
func (d *Dataset) SampleCounts() map[string]int {
	counts := make(map[string]int, len(d.Splits))
	for _, split := range d.Splits {
		counts[split] = len(d.Samples[split])
	}
	return counts
}

// TotalSamples returns the number of valid samples across all splits.
func (d *Dataset) TotalSamples() int {
	total := 0
	for _, samples := range d.Samples {
		total += len(samples)
	}
	return total
}

// All returns every sample in split order, then directory order. The
// slice is rebuilt on each call; callers own it.
func (d *Dataset) All() []*Sample {
	out := make([]*Sample, 0, d.TotalSamples())
	for _, split := range d.Splits {
		out = append(out, d.Samples[split]...)
	}
	return out
}

// SplitIndex returns the position of split in the configured order, or -1
// when the split is unknown. Used to canonicalize split pairs.
func (d *Dataset) SplitIndex(split string) int {
	for i, s := range d.Splits {
		if s == split {
			return i
		}
	}
	return -1
}
