package watcher

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
)

var _ ports.Watcher = (*Poller)(nil)

// fileStamp is the polled identity of a file. A change in either field
// counts as a content change.
type fileStamp struct {
	modTime int64
	size    int64
}

// Poller implements the fixed-interval polling strategy for
// filesystems without native notification support. It diffs successive
// scans of the watch roots and emits the same normalized stream as the
// native watcher.
type Poller struct {
	interval   time.Duration
	skipDirs   map[string]bool
	ignoreFile func(string) bool
	events     chan domain.ChangeEvent

	stopOnce sync.Once
	stop     chan struct{}

	roots    []string
	snapshot map[string]fileStamp
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithPollIgnoreDirs adds directory names to the skip list.
func WithPollIgnoreDirs(names ...string) PollerOption {
	return func(p *Poller) {
		for _, name := range names {
			p.skipDirs[name] = true
		}
	}
}

// WithPollIgnoreFunc installs a predicate applied to canonical paths.
func WithPollIgnoreFunc(pred func(path string) bool) PollerOption {
	return func(p *Poller) {
		p.ignoreFile = pred
	}
}

// NewPoller creates a polling watcher scanning at the given interval.
func NewPoller(interval time.Duration, opts ...PollerOption) *Poller {
	if interval <= 0 {
		interval = domain.DefaultPollInterval
	}
	p := &Poller{
		interval: interval,
		skipDirs: make(map[string]bool, len(defaultSkipDirectories)),
		events:   make(chan domain.ChangeEvent, eventChannelBuffer),
		stop:     make(chan struct{}),
		snapshot: make(map[string]fileStamp),
	}
	for name := range defaultSkipDirectories {
		p.skipDirs[name] = true
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start takes an initial scan as the baseline and begins the interval
// loop. The first scan emits no events.
func (p *Poller) Start(ctx context.Context, roots []string) error {
	p.roots = roots
	p.snapshot = p.scan()

	go p.loop(ctx)

	return nil
}

// Stop ends the polling loop. Safe to call more than once.
func (p *Poller) Stop() error {
	p.stopOnce.Do(func() { close(p.stop) })
	return nil
}

// Events returns an iterator over normalized change events.
func (p *Poller) Events() iter.Seq[domain.ChangeEvent] {
	return func(yield func(domain.ChangeEvent) bool) {
		for event := range p.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.events)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			if !p.emitDiff(ctx) {
				return
			}
		}
	}
}

// emitDiff scans, diffs against the previous snapshot, and emits one
// event per changed file. It reports false when the context ended.
func (p *Poller) emitDiff(ctx context.Context) bool {
	current := p.scan()

	for path, stamp := range current {
		previous, existed := p.snapshot[path]
		switch {
		case !existed:
			if !p.send(ctx, domain.ChangeEvent{ID: domain.NewResourceID(path), Kind: domain.ChangeAdded}) {
				return false
			}
		case previous != stamp:
			if !p.send(ctx, domain.ChangeEvent{ID: domain.NewResourceID(path), Kind: domain.ChangeChanged}) {
				return false
			}
		}
	}
	for path := range p.snapshot {
		if _, exists := current[path]; !exists {
			if !p.send(ctx, domain.ChangeEvent{ID: domain.NewResourceID(path), Kind: domain.ChangeRemoved}) {
				return false
			}
		}
	}

	p.snapshot = current
	return true
}

func (p *Poller) send(ctx context.Context, event domain.ChangeEvent) bool {
	select {
	case p.events <- event:
		return true
	case <-ctx.Done():
		return false
	case <-p.stop:
		return false
	}
}

// scan walks all roots and stamps every file that is not ignored.
func (p *Poller) scan() map[string]fileStamp {
	stamps := make(map[string]fileStamp, len(p.snapshot))
	for _, root := range p.roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable entries are skipped
			}
			if d.IsDir() {
				if p.skipDirs[d.Name()] {
					return fs.SkipDir
				}
				return nil
			}
			canonical := canonicalize(path)
			if p.ignoreFile != nil && p.ignoreFile(canonical) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil //nolint:nilerr // file vanished mid-scan
			}
			stamps[canonical] = fileStamp{
				modTime: info.ModTime().UnixNano(),
				size:    info.Size(),
			}
			return nil
		})
	}
	return stamps
}
