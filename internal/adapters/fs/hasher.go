// Package fs provides filesystem-backed helpers for reading and
// fingerprinting resource content.
package fs

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hasher fingerprints resource content with XXHash. The same digest
// family backs the content cache's lazy versions, so a hash computed
// here is directly comparable with a cached one.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashBytes computes the XXHash of a byte slice.
func (h *Hasher) HashBytes(content []byte) uint64 {
	return xxhash.Sum64(content)
}

// HashFile computes the XXHash of a file's content by streaming it.
func (h *Hasher) HashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// ReadFile reads a file's full content.
func (h *Hasher) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	return content, nil
}
