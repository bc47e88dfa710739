package domain

// TargetState represents the rebuild state of a target. The engine only
// ever transitions a target to StatePending; all other transitions are
// owned by the external orchestrator.
type TargetState uint8

const (
	// StateIdle means the target is not awaiting a rebuild.
	StateIdle TargetState = iota
	// StatePending means the target must be recompiled.
	StatePending
)

// String returns a human-readable state name.
func (s TargetState) String() string {
	switch s {
	case StatePending:
		return "pending"
	default:
		return "idle"
	}
}

// ResourceInvalidator is the per-target fan-out collaborator, typically
// a resource bundler's own dependency tracker (e.g. a stylesheet
// bundler). Given candidate resources it reports which of the files it
// tracks are affected.
type ResourceInvalidator interface {
	// InvalidateResources invalidates the collaborator's state against
	// the candidate resources and returns the affected identifiers.
	InvalidateResources(candidates []ResourceID) ([]ResourceID, error)
}

// Target carries the top-level compilation unit role of a node: its
// rebuild state, the private per-compilation caches, and the resource
// fan-out collaborator.
type Target struct {
	State       TargetState
	Content     *ContentCache
	Outputs     *OutputCache
	Invalidator ResourceInvalidator
}

// NewTarget creates a target role with fresh private caches.
func NewTarget(invalidator ResourceInvalidator) *Target {
	return &Target{
		State:       StateIdle,
		Content:     NewContentCache(),
		Outputs:     NewOutputCache(),
		Invalidator: invalidator,
	}
}

// Node is a vertex of the dependency graph: one trackable resource.
// Adjacency lives in the Graph's two index maps, not on the node, so
// the bidirectional invariant is maintained by a single AddEdge routine.
type Node struct {
	ID ResourceID

	// Target is non-nil when the node is a top-level compilation unit.
	Target *Target
}

// NewNode creates a plain node for the given identifier.
func NewNode(id ResourceID) *Node {
	return &Node{ID: id}
}

// IsTarget reports whether the node carries the target role.
func (n *Node) IsTarget() bool {
	return n.Target != nil
}
