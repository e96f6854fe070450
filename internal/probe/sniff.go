package probe

import (
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// sniffLen covers the longest magic-number offset filetype knows about.
const sniffLen = 261

// Modality labels the kind of media a file claims to be.
type Modality string

const (
	ModalityVideo Modality = "video"
	ModalityAudio Modality = "audio"
)

// VerifyContainer reads the file header and checks that the magic bytes
// agree with the modality implied by the file's extension. A mismatch is
// not an error: the boolean reports agreement and kind names what the
// header actually looks like ("unknown" when nothing matched).
func VerifyContainer(path string, want Modality) (bool, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	if _, err := io.ReadFull(f, buf); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, "", fmt.Errorf("read %s: %w", path, err)
	}

	switch {
	case filetype.IsVideo(buf):
		return want == ModalityVideo, "video", nil
	case filetype.IsAudio(buf):
		return want == ModalityAudio, "audio", nil
	}

	kind, err := filetype.Match(buf)
	if err != nil || kind == filetype.Unknown {
		return false, "unknown", nil
	}
	return false, kind.MIME.Value, nil
}
