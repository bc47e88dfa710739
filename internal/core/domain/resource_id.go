// Package domain contains the core domain models for the incremental
// rebuild engine: the dependency graph, the content and output caches,
// and the change events that drive invalidation.
package domain

import (
	"path/filepath"
	"strings"
	"unique"
)

// ResourceID is the canonical identifier of a trackable resource: an
// absolute, forward-slash normalized path. It wraps a unique.Handle so
// identifiers are interned and cheap to compare and key maps with.
type ResourceID struct {
	h unique.Handle[string]
}

// NewResourceID creates a ResourceID from a path, canonicalizing it to
// forward-slash form. The caller is responsible for passing an absolute
// path; canonicalization does not touch the filesystem.
func NewResourceID(path string) ResourceID {
	return ResourceID{h: unique.Make(CanonicalPath(path))}
}

// NewResourceIDs canonicalizes and interns a slice of paths.
func NewResourceIDs(paths []string) []ResourceID {
	ids := make([]ResourceID, len(paths))
	for i, p := range paths {
		ids[i] = NewResourceID(p)
	}
	return ids
}

// CanonicalPath normalizes a path to the canonical identifier form:
// cleaned, with forward slashes regardless of the host separator.
func CanonicalPath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// String returns the canonical path.
func (id ResourceID) String() string {
	return id.h.Value()
}

// Handle returns the underlying interned handle.
func (id ResourceID) Handle() unique.Handle[string] {
	return id.h
}

// Ext returns the lower-cased file extension of the identifier,
// including the leading dot.
func (id ResourceID) Ext() string {
	return strings.ToLower(filepath.Ext(id.h.Value()))
}

// MarshalText implements encoding.TextMarshaler.
func (id ResourceID) MarshalText() ([]byte, error) {
	return []byte(id.h.Value()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ResourceID) UnmarshalText(text []byte) error {
	id.h = unique.Make(CanonicalPath(string(text)))
	return nil
}

// SourceClassifier reports whether an identifier belongs to the primary
// compiled language. Non-primary resources (stylesheets, templates) are
// fanned out to their dependees during invalidation; primary sources
// are caught by the per-target dependents check instead.
type SourceClassifier func(ResourceID) bool

// DefaultPrimaryExtensions are the extensions treated as primary-language
// sources when no explicit set is configured.
var DefaultPrimaryExtensions = []string{".ts", ".mts", ".cts", ".tsx"}

// NewSourceClassifier builds a classifier from a set of primary-language
// extensions. An empty set falls back to DefaultPrimaryExtensions.
func NewSourceClassifier(extensions []string) SourceClassifier {
	if len(extensions) == 0 {
		extensions = DefaultPrimaryExtensions
	}
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = true
	}
	return func(id ResourceID) bool {
		return set[id.Ext()]
	}
}
