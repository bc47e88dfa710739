// Package watcher implements the change-event normalizer: it turns raw
// filesystem notifications into the canonical, file-level, deduplicated
// event stream the invalidation engine consumes.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// defaultSkipDirectories are directory names that are never watched.
var defaultSkipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

const eventChannelBuffer = 100

// Option configures a Watcher.
type Option func(*Watcher)

// WithIgnoreDirs adds directory names to the skip list.
func WithIgnoreDirs(names ...string) Option {
	return func(w *Watcher) {
		for _, name := range names {
			w.skipDirs[name] = true
		}
	}
}

// WithIgnoreFunc installs a predicate applied to canonical file paths;
// matching files produce no events.
func WithIgnoreFunc(pred func(path string) bool) Option {
	return func(w *Watcher) {
		w.ignoreFile = pred
	}
}

// WithRewatchPolicy overrides the platform rewatch policy.
func WithRewatchPolicy(policy RewatchPolicy) Option {
	return func(w *Watcher) {
		w.rewatch = policy
	}
}

// WithContentStamps enables spurious-write suppression: write events
// whose content hash matches the last observed hash are dropped.
func WithContentStamps(hasher FileHasher) Option {
	return func(w *Watcher) {
		w.stamps = newContentStamps(hasher)
	}
}

// Watcher implements the native notification strategy using fsnotify.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	events     chan domain.ChangeEvent
	errs       chan error
	skipDirs   map[string]bool
	ignoreFile func(string) bool
	rewatch    RewatchPolicy
	stamps     *contentStamps

	mu          sync.Mutex
	watchedDirs map[string]bool
}

// NewWatcher creates a native filesystem watcher. The returned watcher
// holds OS resources as soon as this call succeeds; Stop must be called
// on every exit path.
func NewWatcher(opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchStartFailed.Error())
	}

	w := &Watcher{
		fsWatcher:   fsWatcher,
		events:      make(chan domain.ChangeEvent, eventChannelBuffer),
		errs:        make(chan error, 1),
		skipDirs:    make(map[string]bool, len(defaultSkipDirectories)),
		rewatch:     DefaultRewatchPolicy(),
		watchedDirs: make(map[string]bool),
	}
	for name := range defaultSkipDirectories {
		w.skipDirs[name] = true
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching the given roots recursively. On failure all
// already-acquired handles are released before returning.
func (w *Watcher) Start(ctx context.Context, roots []string) error {
	for _, root := range roots {
		for dir := range w.directoriesUnder(root) {
			if err := w.addDir(dir); err != nil {
				_ = w.Stop()
				return zerr.With(
					zerr.Wrap(err, domain.ErrWatchStartFailed.Error()),
					"dir", dir,
				)
			}
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop releases all underlying OS watch handles.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator over normalized change events. The stream
// ends when the watcher stops or its context is cancelled.
func (w *Watcher) Events() iter.Seq[domain.ChangeEvent] {
	return func(yield func(domain.ChangeEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// Err reports a fatal watch failure. Watch failures are not retried;
// they end the session.
func (w *Watcher) Err() <-chan error {
	return w.errs
}

// directoriesUnder walks the tree and yields all watchable directories.
func (w *Watcher) directoriesUnder(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Skip unreadable directories and keep walking.
				return nil //nolint:nilerr // intentional
			}
			if d.IsDir() {
				if w.skipDirs[d.Name()] {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

func (w *Watcher) addDir(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.mu.Lock()
	w.watchedDirs[canonicalize(dir)] = true
	w.mu.Unlock()
	return nil
}

func (w *Watcher) isWatchedDir(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watchedDirs[path]
}

func (w *Watcher) forgetDir(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.watchedDirs, path)
}

// processEvents normalizes raw fsnotify events until the context is
// cancelled or the watcher is closed.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Watch failures are fatal to the session.
			select {
			case w.errs <- zerr.Wrap(err, domain.ErrWatchStartFailed.Error()):
			default:
			}
			return
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	path := canonicalize(event.Name)

	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// Directory-level events are suppressed; new directories are
			// only re-armed so their files report.
			if !w.skipDirs[info.Name()] {
				for dir := range w.directoriesUnder(event.Name) {
					_ = w.addDir(dir)
				}
			}
			return
		}
	}

	normalized := w.convertEvent(event, path)
	if normalized == nil {
		return
	}
	if w.ignoreFile != nil && w.ignoreFile(path) {
		return
	}
	if w.stamps != nil && w.stamps.shouldSuppress(event.Name, path, normalized.Kind) {
		return
	}

	select {
	case w.events <- *normalized:
	case <-ctx.Done():
		return
	}

	if w.rewatch != nil {
		_ = w.rewatch(w.fsWatcher, filepath.Dir(event.Name))
	}
}

// convertEvent maps an fsnotify op to a logical change kind. Directory
// removals and unknown ops return nil.
func (w *Watcher) convertEvent(event fsnotify.Event, path string) *domain.ChangeEvent {
	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		if w.isWatchedDir(path) {
			return nil
		}
		return &domain.ChangeEvent{ID: domain.NewResourceID(path), Kind: domain.ChangeChanged}
	case event.Op&fsnotify.Create == fsnotify.Create:
		return &domain.ChangeEvent{ID: domain.NewResourceID(path), Kind: domain.ChangeAdded}
	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		if w.isWatchedDir(path) {
			w.forgetDir(path)
			return nil
		}
		return &domain.ChangeEvent{ID: domain.NewResourceID(path), Kind: domain.ChangeRemoved}
	default:
		return nil
	}
}

// canonicalize converts a path to the absolute forward-slash identifier
// form regardless of host separator conventions.
func canonicalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return domain.CanonicalPath(path)
}
