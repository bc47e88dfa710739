// Package invalidate implements the cache-invalidation engine: given a
// batch of changed identifiers it walks the dependency graph, evicts
// affected cache entries, and flags affected targets for rebuild.
package invalidate

import (
	"context"
	"errors"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
)

// Stats summarizes one invalidation pass.
type Stats struct {
	// Changed is the number of changed identifiers with a graph node.
	Changed int
	// Cleaned is the number of identifiers evicted from the global
	// content cache.
	Cleaned int
	// ResourceCandidates is the number of non-primary-language nodes
	// that fanned out to their dependees.
	ResourceCandidates int
	// DirtyTargets is the number of targets flagged pending.
	DirtyTargets int
}

// Engine consumes change batches and produces dirty-target signals.
// It is fully synchronous: a pass runs to completion before the next
// batch may be processed.
type Engine struct {
	graph     *domain.Graph
	content   *domain.ContentCache
	isPrimary domain.SourceClassifier
	logger    ports.Logger
	tracer    ports.Tracer

	lastStats Stats
}

// New creates an engine over the session's graph and global content
// cache. A nil classifier falls back to the default primary-language
// extension set.
func New(
	graph *domain.Graph,
	content *domain.ContentCache,
	classifier domain.SourceClassifier,
	logger ports.Logger,
	tracer ports.Tracer,
) *Engine {
	if classifier == nil {
		classifier = domain.NewSourceClassifier(nil)
	}
	return &Engine{
		graph:     graph,
		content:   content,
		isPrimary: classifier,
		logger:    logger,
		tracer:    tracer,
	}
}

// Invalidate processes one batch of changed identifiers and reports
// whether any target was flagged pending.
//
// Changed paths with no graph node are silent no-ops: they belong to
// files outside the tracked graph, and full rescans on added files are
// the orchestrator's job. Resource-invalidator errors are propagated
// unchanged after the remaining targets have been evaluated.
func (e *Engine) Invalidate(ctx context.Context, changed []domain.ResourceID) (bool, error) {
	_, span := e.tracer.Start(ctx, "invalidate")
	defer span.End()

	span.SetAttribute("batch_size", len(changed))

	// Seed the worklist with the directly changed nodes. The map is
	// keyed by identifier so re-insertion is idempotent, which caps
	// the later fan-out at one visit per node even on cyclic edges.
	toClean := make(map[domain.ResourceID]*domain.Node)
	var resourceSeeds []*domain.Node
	for _, id := range changed {
		node, ok := e.graph.Get(id)
		if !ok {
			continue
		}
		toClean[id] = node
		if !e.isPrimary(id) {
			resourceSeeds = append(resourceSeeds, node)
		}
	}

	// Resource fan-out: a changed non-primary resource pulls all of
	// its dependees into the worklist, and dependees that are
	// themselves resources keep propagating. Primary-language nodes do
	// not fan out here; their dependents are found per target below.
	resourceCandidates := make(map[domain.ResourceID]*domain.Node)
	queue := resourceSeeds
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if _, seen := resourceCandidates[node.ID]; seen {
			continue
		}
		resourceCandidates[node.ID] = node

		for _, depID := range e.graph.Dependees(node.ID) {
			dependee, ok := e.graph.Get(depID)
			if !ok {
				continue
			}
			if _, present := toClean[depID]; !present {
				toClean[depID] = dependee
			}
			if !e.isPrimary(depID) {
				queue = append(queue, dependee)
			}
		}
	}

	candidateList := make([]domain.ResourceID, 0, len(resourceCandidates))
	for _, node := range e.graph.Filter(func(n *domain.Node) bool {
		_, ok := resourceCandidates[n.ID]
		return ok
	}) {
		candidateList = append(candidateList, node.ID)
	}

	// Target decisions run against pre-eviction cache state; the
	// global eviction below happens only after every target has been
	// examined.
	var dirty []*domain.Node
	var invalidatorErrs error
	for _, target := range e.graph.Targets() {
		role := target.Target
		isDirty := false

		if len(candidateList) > 0 && role.Invalidator != nil {
			affected, err := role.Invalidator.InvalidateResources(candidateList)
			if err != nil {
				invalidatorErrs = errors.Join(invalidatorErrs, err)
			} else if len(affected) > 0 {
				isDirty = true
			}
		}

		closure := e.graph.TransitiveDependsOn(target.ID)
		for id := range toClean {
			if _, depends := closure[id]; depends {
				role.Content.Delete(id)
				isDirty = true
			}
		}

		if isDirty {
			dirty = append(dirty, target)
		}
	}

	for id := range toClean {
		e.content.Delete(id)
	}

	for _, target := range dirty {
		target.Target.State = domain.StatePending
	}

	e.lastStats = Stats{
		Changed:            len(changed),
		Cleaned:            len(toClean),
		ResourceCandidates: len(resourceCandidates),
		DirtyTargets:       len(dirty),
	}
	span.SetAttribute("cleaned", e.lastStats.Cleaned)
	span.SetAttribute("dirty_targets", e.lastStats.DirtyTargets)
	if invalidatorErrs != nil {
		span.RecordError(invalidatorErrs)
	}

	return len(dirty) > 0, invalidatorErrs
}

// LastStats returns the statistics of the most recent pass.
func (e *Engine) LastStats() Stats {
	return e.lastStats
}
