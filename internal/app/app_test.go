package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/incr/internal/adapters/telemetry"
	"go.trai.ch/incr/internal/app"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// recordingLogger captures log output for assertions.
type recordingLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []error
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warn(string) {}

func (l *recordingLogger) Error(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, err)
}

func (l *recordingLogger) hasInfoContaining(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, msg := range l.infos {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func TestWatch_ConfigLoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(nil, zerr.With(domain.ErrConfigNotFound, "cwd", "."))

	a := app.New(loader, &recordingLogger{}, telemetry.NewNopTracer())

	err := a.Watch(t.Context(), ".", app.WatchOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestWatch_InvalidStrategyOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(&domain.Session{
		Root:       ".",
		WatchRoots: []string{"."},
		Strategy:   domain.StrategyNative,
	}, nil)

	a := app.New(loader, &recordingLogger{}, telemetry.NewNopTracer())

	err := a.Watch(t.Context(), ".", app.WatchOptions{Strategy: "inotify"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidStrategy)
}

func TestWatch_DuplicateTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(&domain.Session{
		Root:       ".",
		WatchRoots: []string{"."},
		Strategy:   domain.StrategyNative,
		Targets:    []string{"/project/src/main.ts", "/project/src/main.ts"},
	}, nil)

	a := app.New(loader, &recordingLogger{}, telemetry.NewNopTracer())

	err := a.Watch(t.Context(), ".", app.WatchOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to register target")
}

func TestWatch_InvalidatesChangedTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(target, []byte("export {}"), 0o600))
	absTarget, err := filepath.Abs(target)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(dir).Return(&domain.Session{
		Root:           dir,
		WatchRoots:     []string{dir},
		Strategy:       domain.StrategyPoll,
		PollInterval:   10 * time.Millisecond,
		DebounceWindow: 10 * time.Millisecond,
		Targets:        []string{domain.CanonicalPath(absTarget)},
	}, nil)

	log := &recordingLogger{}
	a := app.New(loader, log, telemetry.NewNopTracer())

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, dir, app.WatchOptions{})
	}()

	require.Eventually(t, func() bool {
		return log.hasInfoContaining("watching 1 root(s)")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(target, []byte("export const x = 1"), 0o600))

	require.Eventually(t, func() bool {
		return log.hasInfoContaining("flagged for rebuild")
	}, 5*time.Second, 10*time.Millisecond, "a change to the target itself must flag it")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch session did not shut down")
	}
}

func TestWatch_UntrackedFileIsSilent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.ts")
	require.NoError(t, os.WriteFile(target, []byte("export {}"), 0o600))
	absTarget, err := filepath.Abs(target)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(dir).Return(&domain.Session{
		Root:           dir,
		WatchRoots:     []string{dir},
		Strategy:       domain.StrategyPoll,
		PollInterval:   10 * time.Millisecond,
		DebounceWindow: 10 * time.Millisecond,
		Targets:        []string{domain.CanonicalPath(absTarget)},
	}, nil)

	log := &recordingLogger{}
	a := app.New(loader, log, telemetry.NewNopTracer())

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, dir, app.WatchOptions{})
	}()

	require.Eventually(t, func() bool {
		return log.hasInfoContaining("watching 1 root(s)")
	}, 5*time.Second, 10*time.Millisecond)

	// A file with no graph node must not flag anything.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# notes"), 0o600))

	time.Sleep(200 * time.Millisecond)
	assert.False(t, log.hasInfoContaining("flagged for rebuild"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch session did not shut down")
	}
}
