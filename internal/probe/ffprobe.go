package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"splitaudit/internal/dataset"
)

// FFProbe inspects media files by executing ffprobe with JSON output.
type FFProbe struct {
	// Binary is the executable to run. Empty means DefaultBinary.
	Binary string
}

type streamReport struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
	SampleRate   string `json:"sample_rate"`
	Channels     int    `json:"channels"`
}

// Name implements Prober.
func (f *FFProbe) Name() string {
	if strings.TrimSpace(f.Binary) == "" {
		return DefaultBinary
	}
	return f.Binary
}

// ProbeVideo implements Prober. The fingerprint comes from the first
// video stream in the container.
func (f *FFProbe) ProbeVideo(ctx context.Context, path string) (*dataset.VideoFingerprint, error) {
	report, err := f.run(ctx, path)
	if err != nil {
		return nil, err
	}
	for _, s := range report.Streams {
		if !strings.EqualFold(s.CodecType, "video") {
			continue
		}
		return &dataset.VideoFingerprint{
			Width:  s.Width,
			Height: s.Height,
			Codec:  s.CodecName,
			FPS:    formatFrameRate(s.AvgFrameRate),
		}, nil
	}
	return nil, fmt.Errorf("no video stream in %s", path)
}

// ProbeAudio implements Prober. The fingerprint comes from the first
// audio stream in the container.
func (f *FFProbe) ProbeAudio(ctx context.Context, path string) (*dataset.AudioFingerprint, error) {
	report, err := f.run(ctx, path)
	if err != nil {
		return nil, err
	}
	for _, s := range report.Streams {
		if !strings.EqualFold(s.CodecType, "audio") {
			continue
		}
		rate, _ := strconv.Atoi(strings.TrimSpace(s.SampleRate))
		return &dataset.AudioFingerprint{
			SampleRate: rate,
			Channels:   s.Channels,
		}, nil
	}
	return nil, fmt.Errorf("no audio stream in %s", path)
}

func (f *FFProbe) run(ctx context.Context, path string) (streamReport, error) {
	binary := strings.TrimSpace(f.Binary)
	if binary == "" {
		binary = DefaultBinary
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return streamReport{}, errors.New("probe: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return streamReport{}, fmt.Errorf("probe %s: %w: %s", path, err, strings.TrimSpace(string(output)))
	}

	var report streamReport
	if err := json.Unmarshal(output, &report); err != nil {
		return streamReport{}, fmt.Errorf("probe parse: %w", err)
	}
	return report, nil
}

// formatFrameRate renders an ffprobe rational like "30000/1001" as a
// fixed three-decimal string so equal rates compare equal as strings.
// Unusable rates ("0/0", empty, malformed) render as the empty string.
func formatFrameRate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	num, den, found := strings.Cut(raw, "/")
	if !found {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			return strconv.FormatFloat(v, 'f', 3, 64)
		}
		return ""
	}
	n, errN := strconv.ParseFloat(num, 64)
	d, errD := strconv.ParseFloat(den, 64)
	if errN != nil || errD != nil || n <= 0 || d <= 0 {
		return ""
	}
	return strconv.FormatFloat(n/d, 'f', 3, 64)
}
