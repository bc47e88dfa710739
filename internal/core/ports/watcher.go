package ports

import (
	"context"
	"iter"

	"go.trai.ch/incr/internal/core/domain"
)

// Watcher is the change-event normalizer: it turns raw filesystem
// notifications into the canonical, file-level, deduplicated event
// stream the invalidation engine consumes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given roots. It returns an error if
	// any underlying watch handle cannot be acquired; watch failures
	// are fatal to the session.
	Start(ctx context.Context, roots []string) error

	// Stop releases all underlying OS watch handles. It must be total:
	// safe on every exit path, including after Start errors.
	Stop() error

	// Events returns the live event stream. The stream is cold until
	// iterated and ends when the watcher stops.
	Events() iter.Seq[domain.ChangeEvent]
}
