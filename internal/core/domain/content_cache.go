package domain

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Tristate tracks whether a cached fact is known, and if so its value.
type Tristate uint8

const (
	// TriUnknown means the fact has not been established yet.
	TriUnknown Tristate = iota
	// TriTrue means the fact is known to hold.
	TriTrue
	// TriFalse means the fact is known not to hold.
	TriFalse
)

// ContentEntry caches what is known about one file: whether it exists,
// its raw content, an opaque parsed-unit handle, and a lazily computed
// content version stamp. Once a field is populated it is trusted until
// the entry is evicted; the cache never re-reads underneath it.
//
// Fields are mutated only from the single logical event stream of a
// build session, so the entry itself carries no lock.
type ContentEntry struct {
	exists Tristate

	content    []byte
	hasContent bool

	parsed    any
	hasParsed bool

	version    uint64
	hasVersion bool
}

// Exists returns the cached existence fact.
func (e *ContentEntry) Exists() Tristate {
	return e.exists
}

// SetExists records whether the file exists.
func (e *ContentEntry) SetExists(exists bool) {
	if exists {
		e.exists = TriTrue
	} else {
		e.exists = TriFalse
	}
}

// Content returns the cached raw content and whether it is populated.
func (e *ContentEntry) Content() ([]byte, bool) {
	return e.content, e.hasContent
}

// SetContent records the raw content and implies existence. Any
// previously computed version stamp is discarded.
func (e *ContentEntry) SetContent(content []byte) {
	e.content = content
	e.hasContent = true
	e.exists = TriTrue
	e.hasVersion = false
}

// ParsedUnit returns the cached parsed-unit handle, if populated.
func (e *ContentEntry) ParsedUnit() (any, bool) {
	return e.parsed, e.hasParsed
}

// SetParsedUnit records the opaque parsed-unit handle.
func (e *ContentEntry) SetParsedUnit(unit any) {
	e.parsed = unit
	e.hasParsed = true
}

// Version returns the content version stamp, computing it from the
// cached content on first use. It reports false until content has been
// populated.
func (e *ContentEntry) Version() (uint64, bool) {
	if !e.hasContent {
		return 0, false
	}
	if !e.hasVersion {
		e.version = xxhash.Sum64(e.content)
		e.hasVersion = true
	}
	return e.version, true
}

// ContentCache is the per-file store of a build session, keyed by
// canonical identifier. It is a correctness cache, not a bounded LRU:
// entries leave only through explicit deletion or session teardown.
type ContentCache struct {
	mu      sync.Mutex
	entries map[ResourceID]*ContentEntry
}

// NewContentCache creates an empty content cache.
func NewContentCache() *ContentCache {
	return &ContentCache{entries: make(map[ResourceID]*ContentEntry)}
}

// GetOrCreate returns the entry for the identifier, creating an empty
// one if absent. Concurrent calls for the same identifier return the
// same instance.
func (c *ContentCache) GetOrCreate(id ResourceID) *ContentEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[id]
	if !ok {
		entry = &ContentEntry{}
		c.entries[id] = entry
	}
	return entry
}

// Get returns the entry for the identifier without creating one.
func (c *ContentCache) Get(id ResourceID) (*ContentEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[id]
	return entry, ok
}

// Delete evicts the entry for the identifier. Deleting a missing entry
// is a no-op.
func (c *ContentCache) Delete(id ResourceID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Len returns the number of cached entries.
func (c *ContentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset discards all entries. Used at end of a build session.
func (c *ContentCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[ResourceID]*ContentEntry)
}
