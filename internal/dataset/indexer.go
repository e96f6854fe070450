package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MetaFileName is the per-sample metadata file recognized by convention.
const MetaFileName = "meta.json"

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mkv":  {},
	".avi":  {},
	".mov":  {},
	".webm": {},
}

var audioExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".flac": {},
	".aac":  {},
	".m4a":  {},
	".ogg":  {},
}

// IsVideoExt reports whether ext (with leading dot, any case) is a
// recognized video extension.
func IsVideoExt(ext string) bool {
	_, ok := videoExtensions[strings.ToLower(ext)]
	return ok
}

// IsAudioExt reports whether ext is a recognized audio extension.
func IsAudioExt(ext string) bool {
	_, ok := audioExtensions[strings.ToLower(ext)]
	return ok
}

// Indexer builds the sample catalog for one dataset root.
type Indexer struct {
	root   string
	splits []string
}

// NewIndexer constructs an indexer for the given root and ordered split names.
func NewIndexer(root string, splits []string) *Indexer {
	return &Indexer{root: root, splits: splits}
}

// Index walks every configured split directory and catalogs its samples.
// A sample directory is valid when it holds at least one recognized video
// file; everything else about it is optional. Recoverable problems (a
// missing split directory, a sample directory without video) are returned
// as formatted entries and never abort the walk.
func (ix *Indexer) Index(ctx context.Context) (*Dataset, []string, error) {
	ds := &Dataset{
		Root:    ix.root,
		Splits:  append([]string(nil), ix.splits...),
		Samples: make(map[string][]*Sample, len(ix.splits)),
	}
	var issues []string

	for _, split := range ix.splits {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		splitDir := filepath.Join(ix.root, split)
		entries, err := os.ReadDir(splitDir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				issues = append(issues, fmt.Sprintf("missing split: %s: directory %s does not exist", split, splitDir))
			} else {
				issues = append(issues, fmt.Sprintf("missing split: %s: %v", split, err))
			}
			ds.Samples[split] = nil
			continue
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			if !entry.IsDir() {
				continue
			}
			sample, err := loadSample(split, splitDir, entry.Name())
			if err != nil {
				issues = append(issues, fmt.Sprintf("sample load: %s/%s: %v", split, entry.Name(), err))
				ds.Skipped++
				continue
			}
			ds.Samples[split] = append(ds.Samples[split], sample)
		}
	}

	return ds, issues, nil
}

// loadSample inspects one sample directory. os.ReadDir returns entries
// sorted by name, so when several candidates exist the lexicographically
// first video/audio file wins, keeping the catalog deterministic.
func loadSample(split, splitDir, name string) (*Sample, error) {
	sampleDir := filepath.Join(splitDir, name)
	entries, err := os.ReadDir(sampleDir)
	if err != nil {
		return nil, fmt.Errorf("read sample directory: %w", err)
	}

	sample := &Sample{ID: name, Split: split, Dir: sampleDir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileName := entry.Name()
		if fileName == MetaFileName {
			sample.MetaPath = filepath.Join(sampleDir, fileName)
			continue
		}
		ext := filepath.Ext(fileName)
		switch {
		case IsVideoExt(ext):
			if sample.VideoPath == "" {
				sample.VideoPath = filepath.Join(sampleDir, fileName)
			}
		case IsAudioExt(ext):
			if sample.AudioPath == "" {
				sample.AudioPath = filepath.Join(sampleDir, fileName)
			}
		}
	}

	if sample.VideoPath == "" {
		return nil, errors.New("no recognized video file")
	}
	return sample, nil
}
