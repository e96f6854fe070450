package probe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// stubProbe writes an executable that prints the given JSON payload and
// returns its path.
func stubProbe(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffprobe")
	script := fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%s\nEOF\n", payload)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestFFProbeParsesVideoFingerprint(t *testing.T) {
	binary := stubProbe(t, `{
  "streams": [
    {"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "avg_frame_rate": "30000/1001"},
    {"codec_type": "audio", "codec_name": "aac", "sample_rate": "48000", "channels": 2}
  ]
}`)

	prober := &FFProbe{Binary: binary}
	fp, err := prober.ProbeVideo(context.Background(), "/data/sample/video.mp4")
	if err != nil {
		t.Fatalf("ProbeVideo: %v", err)
	}
	if fp.Width != 1920 || fp.Height != 1080 {
		t.Fatalf("unexpected dimensions: %+v", fp)
	}
	if fp.Codec != "h264" {
		t.Fatalf("codec = %q, want h264", fp.Codec)
	}
	if fp.FPS != "29.970" {
		t.Fatalf("fps = %q, want 29.970", fp.FPS)
	}
}

func TestFFProbeParsesAudioFingerprint(t *testing.T) {
	binary := stubProbe(t, `{
  "streams": [
    {"codec_type": "audio", "codec_name": "pcm_s16le", "sample_rate": "16000", "channels": 1}
  ]
}`)

	prober := &FFProbe{Binary: binary}
	fp, err := prober.ProbeAudio(context.Background(), "/data/sample/audio.wav")
	if err != nil {
		t.Fatalf("ProbeAudio: %v", err)
	}
	if fp.SampleRate != 16000 {
		t.Fatalf("sample rate = %d, want 16000", fp.SampleRate)
	}
	if fp.Channels != 1 {
		t.Fatalf("channels = %d, want 1", fp.Channels)
	}
}

func TestFFProbeMissingStream(t *testing.T) {
	binary := stubProbe(t, `{"streams": [{"codec_type": "audio", "sample_rate": "48000", "channels": 2}]}`)

	prober := &FFProbe{Binary: binary}
	if _, err := prober.ProbeVideo(context.Background(), "/data/sample/video.mp4"); err == nil {
		t.Fatal("expected error when no video stream present")
	}
}

func TestFFProbeEmptyPath(t *testing.T) {
	prober := &FFProbe{Binary: "ffprobe"}
	if _, err := prober.ProbeVideo(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestFormatFrameRate(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"30000/1001", "29.970"},
		{"30/1", "30.000"},
		{"25", "25.000"},
		{"0/0", ""},
		{"", ""},
		{"garbage", ""},
		{"-30/1", ""},
	}
	for _, tc := range cases {
		if got := formatFrameRate(tc.raw); got != tc.want {
			t.Fatalf("formatFrameRate(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestDetect(t *testing.T) {
	prober, available := Detect("splitaudit-missing-probe-binary")
	if available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if _, ok := prober.(NullProber); !ok {
		t.Fatalf("expected NullProber fallback, got %T", prober)
	}

	stub := stubProbe(t, `{"streams":[]}`)
	prober, available = Detect(stub)
	if !available {
		t.Fatal("expected stub binary to be detected")
	}
	if _, ok := prober.(*FFProbe); !ok {
		t.Fatalf("expected FFProbe, got %T", prober)
	}
}

func TestNullProber(t *testing.T) {
	var p NullProber
	fp, err := p.ProbeVideo(context.Background(), "anything")
	if err != nil || fp != nil {
		t.Fatalf("expected nil fingerprint and nil error, got %v, %v", fp, err)
	}
	afp, err := p.ProbeAudio(context.Background(), "anything")
	if err != nil || afp != nil {
		t.Fatalf("expected nil fingerprint and nil error, got %v, %v", afp, err)
	}
}
