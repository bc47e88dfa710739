package watcher_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/adapters/watcher"
	"go.trai.ch/incr/internal/core/domain"
)

// eventSink collects events from a watcher stream in the background.
type eventSink struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func collect(t *testing.T, events func(func(domain.ChangeEvent) bool)) *eventSink {
	t.Helper()
	sink := &eventSink{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events {
			sink.mu.Lock()
			sink.events = append(sink.events, event)
			sink.mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("event stream did not close")
		}
	})
	return sink
}

func (s *eventSink) find(path string, kind domain.ChangeKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := domain.NewResourceID(path)
	for _, event := range s.events {
		if event.ID == id && event.Kind == kind {
			return true
		}
	}
	return false
}

func (s *eventSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestPoller_BaselineEmitsNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("export {}"), 0o644))

	p := watcher.NewPoller(10 * time.Millisecond)
	require.NoError(t, p.Start(t.Context(), []string{dir}))
	t.Cleanup(func() { _ = p.Stop() })

	sink := collect(t, p.Events())

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, sink.len(), "existing files must not report as added")
}

func TestPoller_DetectsAddChangeRemove(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.ts")
	abs, err := filepath.Abs(target)
	require.NoError(t, err)

	p := watcher.NewPoller(10 * time.Millisecond)
	require.NoError(t, p.Start(t.Context(), []string{dir}))
	t.Cleanup(func() { _ = p.Stop() })

	sink := collect(t, p.Events())

	require.NoError(t, os.WriteFile(target, []byte("export {}"), 0o644))
	require.Eventually(t, func() bool {
		return sink.find(abs, domain.ChangeAdded)
	}, 5*time.Second, 10*time.Millisecond, "new file must report as added")

	require.NoError(t, os.WriteFile(target, []byte("export const x = 1"), 0o644))
	require.Eventually(t, func() bool {
		return sink.find(abs, domain.ChangeChanged)
	}, 5*time.Second, 10*time.Millisecond, "grown file must report as changed")

	require.NoError(t, os.Remove(target))
	require.Eventually(t, func() bool {
		return sink.find(abs, domain.ChangeRemoved)
	}, 5*time.Second, 10*time.Millisecond, "deleted file must report as removed")
}

func TestPoller_IgnoredFileEmitsNothing(t *testing.T) {
	dir := t.TempDir()

	p := watcher.NewPoller(10*time.Millisecond, watcher.WithPollIgnoreFunc(func(path string) bool {
		return filepath.Ext(path) == ".log"
	}))
	require.NoError(t, p.Start(t.Context(), []string{dir}))
	t.Cleanup(func() { _ = p.Stop() })

	sink := collect(t, p.Events())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.log"), []byte("ok"), 0o644))

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, sink.len())
}

func TestPoller_SkipsIgnoredDirectories(t *testing.T) {
	dir := t.TempDir()
	modules := filepath.Join(dir, "node_modules")
	require.NoError(t, os.MkdirAll(modules, 0o755))

	p := watcher.NewPoller(10 * time.Millisecond)
	require.NoError(t, p.Start(t.Context(), []string{dir}))
	t.Cleanup(func() { _ = p.Stop() })

	sink := collect(t, p.Events())

	require.NoError(t, os.WriteFile(filepath.Join(modules, "dep.js"), []byte("x"), 0o644))

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, sink.len(), "files under node_modules must not report")
}

func TestPoller_StopClosesStream(t *testing.T) {
	p := watcher.NewPoller(10 * time.Millisecond)
	require.NoError(t, p.Start(t.Context(), []string{t.TempDir()}))

	sink := collect(t, p.Events())

	require.NoError(t, p.Stop())
	require.NoError(t, p.Stop())
	_ = sink
}
