// Package hashing computes byte-exact content digests for media files.
//
// Digests are hex-encoded SHA-256 over the full file contents. Files are
// read in fixed-size chunks with a cancellation check between chunks so
// large media files do not block shutdown.
package hashing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize bounds each read so cancellation latency stays proportional
// to one chunk, not one file.
const chunkSize = 1 << 20

// FileSHA256 returns the hex-encoded SHA-256 digest of the file at path
// along with the number of bytes hashed. The read is aborted with the
// context error as soon as ctx is cancelled.
func FileSHA256(ctx context.Context, path string) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return "", total, err
		}
		n, err := file.Read(buf)
		if n > 0 {
			_, _ = h.Write(buf[:n])
			total += int64(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", total, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), total, nil
}
