// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/incr/internal/core/domain"
)

// TransformContext carries the (containing, resource) pair a
// transformation runs for, so the caching decorator can register the
// dependency edge as a side effect.
type TransformContext struct {
	// Containing is the unit whose compilation requested the transform.
	Containing domain.ResourceID
	// Resource is the resource being transformed.
	Resource domain.ResourceID
}

// TransformResult is the outcome of a resource transformation.
// Warnings are user-visible diagnostics that do not fail the
// transformation.
type TransformResult struct {
	Content  []byte
	Warnings []string
}

// CompilerHost is the consumed compilation collaborator. The core
// supplies a caching decorator in front of these primitives; it never
// implements the compilation pipeline itself.
//
// ReadResource and TransformResource are the asynchronous boundaries:
// they take a context and may suspend awaiting external tool output.
//
//go:generate mockgen -source=compiler_host.go -destination=mocks/mock_compiler_host.go -package=mocks
type CompilerHost interface {
	// FileExists reports whether the file backing the identifier exists.
	FileExists(id domain.ResourceID) bool

	// ReadFile returns the raw content of the file.
	ReadFile(id domain.ResourceID) ([]byte, error)

	// GetSourceFile returns the parsed unit for a primary-language
	// source. The handle is opaque to the core.
	GetSourceFile(id domain.ResourceID) (any, error)

	// ResolveResource resolves a referenced resource name relative to
	// its containing unit.
	ResolveResource(containing domain.ResourceID, name string) (domain.ResourceID, error)

	// ReadResource reads a non-primary-language resource.
	ReadResource(ctx context.Context, id domain.ResourceID) ([]byte, error)

	// TransformResource transforms resource content (e.g. bundles a
	// stylesheet). A nil result content means the transformation
	// produced no output for this resource.
	TransformResource(ctx context.Context, content []byte, tctx TransformContext) (TransformResult, error)
}
