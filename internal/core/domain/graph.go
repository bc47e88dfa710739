package domain

import (
	"sync"

	"go.trai.ch/zerr"
)

// Graph is the node and edge store of the rebuild engine. Nodes are
// identified by their canonical ResourceID; the depends-on relation is
// one logical set of pairs maintained as two adjacency indices so the
// invariant "B in DependsOn(A) iff A in Dependees(B)" holds after every
// mutation.
//
// Nodes are materialized lazily and never deleted; a node with no
// remaining edges and no role is inert. Iteration order of Find and
// Filter is insertion order.
type Graph struct {
	mu        sync.Mutex
	nodes     map[ResourceID]*Node
	order     []ResourceID
	dependsOn map[ResourceID]*idSet
	dependees map[ResourceID]*idSet
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[ResourceID]*Node),
		dependsOn: make(map[ResourceID]*idSet),
		dependees: make(map[ResourceID]*idSet),
	}
}

// Get returns the node for the given identifier, if present.
func (g *Graph) Get(id ResourceID) (*Node, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	return n, ok
}

// Put registers a new node. It returns ErrDuplicateNode if a node with
// the same identifier already exists.
func (g *Graph) Put(n *Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.nodes[n.ID]; exists {
		return zerr.With(ErrDuplicateNode, "id", n.ID.String())
	}
	g.insert(n)
	return nil
}

// Ensure returns the node for the identifier, creating a plain node if
// none exists. It is the idempotent upsert wrapper over Put: concurrent
// calls for the same identifier return the same instance.
func (g *Graph) Ensure(id ResourceID) *Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ensure(id)
}

// Find returns the first node satisfying the predicate in insertion
// order.
func (g *Graph) Find(pred func(*Node) bool) (*Node, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range g.order {
		if n := g.nodes[id]; pred(n) {
			return n, true
		}
	}
	return nil, false
}

// Filter returns all nodes satisfying the predicate in insertion order.
func (g *Graph) Filter(pred func(*Node) bool) []*Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	var matched []*Node
	for _, id := range g.order {
		if n := g.nodes[id]; pred(n) {
			matched = append(matched, n)
		}
	}
	return matched
}

// Targets returns all nodes carrying the target role, insertion order.
func (g *Graph) Targets() []*Node {
	return g.Filter(func(n *Node) bool { return n.IsTarget() })
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// AddEdge records that from's compiled output requires to's content.
// Both endpoints are materialized lazily. Adding an existing edge is a
// no-op; cycles are permitted and must be handled by traversals.
func (g *Graph) AddEdge(from, to ResourceID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(from)
	g.ensure(to)
	g.edgeSet(g.dependsOn, from).add(to)
	g.edgeSet(g.dependees, to).add(from)
}

// RemoveEdge removes the edge between from and to, restoring both
// indices atomically. Removing a missing edge is a no-op.
func (g *Graph) RemoveEdge(from, to ResourceID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if set, ok := g.dependsOn[from]; ok {
		set.remove(to)
	}
	if set, ok := g.dependees[to]; ok {
		set.remove(from)
	}
}

// DependsOn returns a snapshot of the identifiers the given node
// depends on, in edge insertion order.
func (g *Graph) DependsOn(id ResourceID) []ResourceID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(g.dependsOn, id)
}

// Dependees returns a snapshot of the identifiers depending on the
// given node, in edge insertion order.
func (g *Graph) Dependees(id ResourceID) []ResourceID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(g.dependees, id)
}

// TransitiveDependsOn returns the transitive closure of the depends-on
// relation starting at id, including id itself. The walk is cycle-safe:
// every identifier is visited at most once.
func (g *Graph) TransitiveDependsOn(id ResourceID) map[ResourceID]struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()

	closure := make(map[ResourceID]struct{})
	stack := []ResourceID{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := closure[current]; seen {
			continue
		}
		closure[current] = struct{}{}
		if set, ok := g.dependsOn[current]; ok {
			stack = append(stack, set.order...)
		}
	}
	return closure
}

// ensure must be called with the lock held.
func (g *Graph) ensure(id ResourceID) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := NewNode(id)
	g.insert(n)
	return n
}

// insert must be called with the lock held.
func (g *Graph) insert(n *Node) {
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
}

// edgeSet must be called with the lock held.
func (g *Graph) edgeSet(index map[ResourceID]*idSet, id ResourceID) *idSet {
	set, ok := index[id]
	if !ok {
		set = newIDSet()
		index[id] = set
	}
	return set
}

// snapshot must be called with the lock held.
func (g *Graph) snapshot(index map[ResourceID]*idSet, id ResourceID) []ResourceID {
	set, ok := index[id]
	if !ok {
		return nil
	}
	out := make([]ResourceID, len(set.order))
	copy(out, set.order)
	return out
}

// idSet is an insertion-ordered set of identifiers.
type idSet struct {
	order  []ResourceID
	member map[ResourceID]struct{}
}

func newIDSet() *idSet {
	return &idSet{member: make(map[ResourceID]struct{})}
}

func (s *idSet) add(id ResourceID) bool {
	if _, ok := s.member[id]; ok {
		return false
	}
	s.member[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *idSet) remove(id ResourceID) {
	if _, ok := s.member[id]; !ok {
		return
	}
	delete(s.member, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
