// Package app implements the application layer for incr.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/incr/internal/adapters/fs"
	"go.trai.ch/incr/internal/adapters/watcher"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/incr/internal/engine/invalidate"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	tracer       ports.Tracer
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, tracer ports.Tracer) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		tracer:       tracer,
	}
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// Strategy overrides the configured watch strategy when non-empty.
	Strategy string
}

// fatalReporter is implemented by watchers whose failures end the
// session rather than being retried.
type fatalReporter interface {
	Err() <-chan error
}

// Watch loads the session configuration, builds the dependency graph
// with one target per configured entry point, and runs the
// watch-debounce-invalidate loop until the context is cancelled or the
// watcher fails.
func (a *App) Watch(ctx context.Context, cwd string, opts WatchOptions) error {
	session, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Strategy != "" {
		strategy := domain.WatchStrategy(opts.Strategy)
		if strategy != domain.StrategyNative && strategy != domain.StrategyPoll {
			return zerr.With(domain.ErrInvalidStrategy, "strategy", opts.Strategy)
		}
		session.Strategy = strategy
	}

	graph := domain.NewGraph()
	content := domain.NewContentCache()
	for _, path := range session.Targets {
		node := domain.NewNode(domain.NewResourceID(path))
		node.Target = domain.NewTarget(nil)
		if err := graph.Put(node); err != nil {
			return zerr.Wrap(err, "failed to register target")
		}
	}

	engine := invalidate.New(
		graph,
		content,
		domain.NewSourceClassifier(session.PrimaryExtensions),
		a.logger,
		a.tracer,
	)

	w, err := a.buildWatcher(session)
	if err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(session.DebounceWindow, func(batch []domain.ChangeEvent) {
		a.processBatch(ctx, engine, batch)
	})

	if err := w.Start(ctx, session.WatchRoots); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf(
		"watching %d root(s) with %d target(s), strategy %s",
		len(session.WatchRoots), len(session.Targets), session.Strategy,
	))

	var fatal <-chan error
	if reporter, ok := w.(fatalReporter); ok {
		fatal = reporter.Err()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range w.Events() {
			debouncer.Add(event)
		}
		return nil
	})

	g.Go(func() error {
		var fatalErr error
		select {
		case <-ctx.Done():
		case fatalErr = <-fatal:
		}
		return errors.Join(fatalErr, w.Stop())
	})

	err = g.Wait()

	// Deliver any batch still sitting in the window before reporting.
	debouncer.Flush()

	return err
}

// processBatch runs one invalidation pass over a debounced batch.
func (a *App) processBatch(ctx context.Context, engine *invalidate.Engine, batch []domain.ChangeEvent) {
	ids := make([]domain.ResourceID, 0, len(batch))
	for _, event := range batch {
		ids = append(ids, event.ID)
	}

	dirty, err := engine.Invalidate(ctx, ids)
	if err != nil {
		a.logger.Error(err)
	}
	if !dirty {
		return
	}

	stats := engine.LastStats()
	a.logger.Info(fmt.Sprintf(
		"%d target(s) flagged for rebuild, %d cache entr(ies) evicted",
		stats.DirtyTargets, stats.Cleaned,
	))
}

func (a *App) buildWatcher(session *domain.Session) (ports.Watcher, error) {
	if session.Strategy == domain.StrategyPoll {
		return watcher.NewPoller(
			session.PollInterval,
			watcher.WithPollIgnoreDirs(session.Ignore...),
		), nil
	}
	return watcher.NewWatcher(
		watcher.WithIgnoreDirs(session.Ignore...),
		watcher.WithContentStamps(fs.NewHasher()),
	)
}
