// Package fsutil provides the filesystem capabilities the checkers depend
// on. Each capability is an interface so tests can substitute fakes; the
// OS-backed implementations live alongside.
package fsutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// FileHasher computes a content digest for a file.
type FileHasher interface {
	HashFile(path string) (string, error)
}

// SHA256Hasher hashes file contents with SHA-256, matching the algorithm
// used to build the baseline. Digests are bare lowercase hex.
type SHA256Hasher struct{}

// HashFile streams the file through SHA-256. Any error (absent, permission
// denied) is returned as-is; callers cannot distinguish absent from
// unreadable, which is a preserved limitation of the design.
func (SHA256Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes digests a byte slice the same way HashFile digests a file.
// Useful for building baselines in tests.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
