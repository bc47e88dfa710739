// Package host implements the caching decorator in front of the
// compiler-host collaborator. It answers primitive operations from the
// global content cache and registers dependency edges as a side effect
// of resolution and transformation.
package host

import (
	"context"

	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CompilerHost = (*CachingHost)(nil)

// CachingHost wraps an inner compiler host with the session's content
// cache and dependency graph. Populated cache fields are trusted until
// the invalidation engine evicts them; the inner host is consulted only
// on a miss.
type CachingHost struct {
	inner  ports.CompilerHost
	graph  *domain.Graph
	cache  *domain.ContentCache
	logger ports.Logger
}

// NewCachingHost creates the decorator over the inner host.
func NewCachingHost(
	inner ports.CompilerHost,
	graph *domain.Graph,
	cache *domain.ContentCache,
	logger ports.Logger,
) *CachingHost {
	return &CachingHost{
		inner:  inner,
		graph:  graph,
		cache:  cache,
		logger: logger,
	}
}

// FileExists answers from the cache, asking the inner host once per
// entry lifetime.
func (h *CachingHost) FileExists(id domain.ResourceID) bool {
	entry := h.cache.GetOrCreate(id)
	if state := entry.Exists(); state != domain.TriUnknown {
		return state == domain.TriTrue
	}
	exists := h.inner.FileExists(id)
	entry.SetExists(exists)
	return exists
}

// ReadFile returns the cached content, reading through on a miss.
func (h *CachingHost) ReadFile(id domain.ResourceID) ([]byte, error) {
	entry := h.cache.GetOrCreate(id)
	if content, ok := entry.Content(); ok {
		return content, nil
	}
	content, err := h.inner.ReadFile(id)
	if err != nil {
		entry.SetExists(false)
		return nil, err
	}
	entry.SetContent(content)
	return content, nil
}

// GetSourceFile returns the cached parsed unit, parsing through on a
// miss.
func (h *CachingHost) GetSourceFile(id domain.ResourceID) (any, error) {
	entry := h.cache.GetOrCreate(id)
	if unit, ok := entry.ParsedUnit(); ok {
		return unit, nil
	}
	unit, err := h.inner.GetSourceFile(id)
	if err != nil {
		return nil, err
	}
	entry.SetParsedUnit(unit)
	return unit, nil
}

// ResolveResource resolves a referenced resource name and registers the
// (containing, resolved) dependency edge.
func (h *CachingHost) ResolveResource(containing domain.ResourceID, name string) (domain.ResourceID, error) {
	resolved, err := h.inner.ResolveResource(containing, name)
	if err != nil {
		return domain.ResourceID{}, zerr.With(
			zerr.With(
				zerr.Wrap(err, domain.ErrResolveFailed.Error()),
				"containing", containing.String(),
			),
			"name", name,
		)
	}
	h.graph.AddEdge(containing, resolved)
	return resolved, nil
}

// ReadResource reads a non-primary-language resource through the cache.
// A read failure means the collaborator cannot locate the file and is a
// hard failure for the current build attempt.
func (h *CachingHost) ReadResource(ctx context.Context, id domain.ResourceID) ([]byte, error) {
	entry := h.cache.GetOrCreate(id)
	if content, ok := entry.Content(); ok {
		return content, nil
	}
	content, err := h.inner.ReadResource(ctx, id)
	if err != nil {
		entry.SetExists(false)
		return nil, zerr.With(
			zerr.Wrap(err, domain.ErrUnreadableResource.Error()),
			"id", id.String(),
		)
	}
	entry.SetContent(content)
	return content, nil
}

// TransformResource runs the collaborator's transformation, registers
// the dependency edge carried by the transform context, logs warnings,
// and fails the operation when the collaborator reports errors.
func (h *CachingHost) TransformResource(ctx context.Context, content []byte, tctx ports.TransformContext) (ports.TransformResult, error) {
	h.graph.AddEdge(tctx.Containing, tctx.Resource)

	result, err := h.inner.TransformResource(ctx, content, tctx)
	for _, warning := range result.Warnings {
		h.logger.Warn(warning)
	}
	if err != nil {
		return ports.TransformResult{}, zerr.With(
			zerr.Wrap(err, domain.ErrTransformFailed.Error()),
			"resource", tctx.Resource.String(),
		)
	}
	return result, nil
}
