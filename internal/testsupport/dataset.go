package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Sample describes one dataset sample directory to materialize on disk.
// Video is required by the indexer; Audio and Meta are written only when
// non-empty.
type Sample struct {
	Split string
	ID    string
	Video []byte
	Audio []byte
	Meta  string
}

// WriteSample materializes one sample directory under root.
func WriteSample(t testing.TB, root string, s Sample) {
	t.Helper()

	dir := filepath.Join(root, s.Split, s.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	video := s.Video
	if len(video) == 0 {
		video = []byte(s.Split + "/" + s.ID)
	}
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), video, 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	if len(s.Audio) > 0 {
		if err := os.WriteFile(filepath.Join(dir, "speech.wav"), s.Audio, 0o644); err != nil {
			t.Fatalf("write audio: %v", err)
		}
	}
	if s.Meta != "" {
		if err := os.WriteFile(filepath.Join(dir, "meta.json"), []byte(s.Meta), 0o644); err != nil {
			t.Fatalf("write meta: %v", err)
		}
	}
}

// WriteDataset materializes a whole dataset tree under root. Splits
// without samples still get their directory so the indexer does not
// report them missing.
func WriteDataset(t testing.TB, root string, splits []string, samples []Sample) {
	t.Helper()

	for _, split := range splits {
		if err := os.MkdirAll(filepath.Join(root, split), 0o755); err != nil {
			t.Fatalf("mkdir split %s: %v", split, err)
		}
	}
	for _, s := range samples {
		WriteSample(t, root, s)
	}
}
