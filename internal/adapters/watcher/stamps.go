package watcher

import (
	"sync"

	"go.trai.ch/incr/internal/core/domain"
)

// FileHasher fingerprints file content for the spurious-write check.
type FileHasher interface {
	HashFile(path string) (uint64, error)
}

// contentStamps remembers the last observed content hash per file so the
// watcher can drop write notifications that did not change any bytes.
// Editors that save with a truncate-then-write cycle produce several
// notifications per save; only the one whose content differs matters.
type contentStamps struct {
	hasher FileHasher

	mu     sync.Mutex
	stamps map[string]uint64
}

func newContentStamps(hasher FileHasher) *contentStamps {
	return &contentStamps{
		hasher: hasher,
		stamps: make(map[string]uint64),
	}
}

// shouldSuppress reports whether an event for the file at osPath can be
// dropped. Only change events are candidates: added files seed the stamp
// and removed files clear it, both always passing through. When the file
// cannot be hashed the event passes through as well.
func (s *contentStamps) shouldSuppress(osPath, canonical string, kind domain.ChangeKind) bool {
	if kind == domain.ChangeRemoved {
		s.mu.Lock()
		delete(s.stamps, canonical)
		s.mu.Unlock()
		return false
	}

	hash, err := s.hasher.HashFile(osPath)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, known := s.stamps[canonical]
	s.stamps[canonical] = hash

	return kind == domain.ChangeChanged && known && previous == hash
}
