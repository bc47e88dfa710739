package domain

import (
	"bytes"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// OutputEntry is the last written state of one emitted artifact.
type OutputEntry struct {
	Content []byte
	Hash    uint64
}

// OutputCache suppresses redundant artifact writes. A Set with content
// byte-identical to the cached value is a no-op, so downstream
// consumers never see a "changed" signal when a recompilation
// reproduces identical output. Comparison is exact, not hash-for-hash.
type OutputCache struct {
	mu      sync.Mutex
	entries map[ResourceID]OutputEntry
}

// NewOutputCache creates an empty output cache.
func NewOutputCache() *OutputCache {
	return &OutputCache{entries: make(map[ResourceID]OutputEntry)}
}

// Get returns the cached entry for the artifact, if present.
func (c *OutputCache) Get(id ResourceID) (OutputEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[id]
	return entry, ok
}

// Set stores the artifact content and reports whether anything was
// written. Identical content leaves the entry untouched and returns
// false.
func (c *OutputCache) Set(id ResourceID, content []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[id]; ok && bytes.Equal(existing.Content, content) {
		return false
	}

	stored := make([]byte, len(content))
	copy(stored, content)
	c.entries[id] = OutputEntry{
		Content: stored,
		Hash:    xxhash.Sum64(stored),
	}
	return true
}

// Len returns the number of cached artifacts.
func (c *OutputCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
