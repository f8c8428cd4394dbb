package dag

import (
	"iter"

	"github.com/vk/infragrid/internal/config"
)

// Address returns the stable resource address for a (type, name) pair.
func Address(resourceType, name string) string {
	return resourceType + "." + name
}

// Reference is a directed edge from a consuming resource to a producing
// resource, keyed by the producer's address and attribute path.
type Reference struct {
	// From is the address of the consuming resource.
	From string
	// To is the address of the producing resource.
	To string
	// AttributePath is the attribute on the producer being consumed.
	// Ordering-only edges (depends_on) carry an empty path.
	AttributePath string
}

// Graph is the full set of declared resources plus the references between
// them. It is built single-threaded; after Build returns, the topology is
// read-only and only per-node live values mutate during execution.
type Graph struct {
	nodes map[string]*Node
	// order preserves declaration order for reproducible iteration.
	order []*Node
	refs  map[string][]Reference
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		refs:  make(map[string][]Reference),
	}
}

// AddResource registers a node for a declared resource. It fails with
// *DuplicateResourceError if the (type, name) pair is already registered.
func (g *Graph) AddResource(res *config.Resource) (*Node, error) {
	id := Address(res.Type, res.Name)
	if _, exists := g.nodes[id]; exists {
		return nil, &DuplicateResourceError{Type: res.Type, Name: res.Name}
	}

	node := &Node{
		ID:         id,
		Type:       res.Type,
		Name:       res.Name,
		Config:     res,
		Deps:       make(map[string]*Node),
		Dependents: make(map[string]*Node),
		DeclOrder:  res.DeclOrder,
	}
	g.nodes[id] = node
	g.order = append(g.order, node)
	return node, nil
}

// AddReference creates a directed edge from the consuming node to the
// producing node. It fails with *UnknownResourceError if either endpoint is
// unregistered.
func (g *Graph) AddReference(from, to, attributePath string) error {
	fromNode, ok := g.nodes[from]
	if !ok {
		return &UnknownResourceError{Address: from}
	}
	toNode, ok := g.nodes[to]
	if !ok {
		return &UnknownResourceError{Address: to, ReferencedBy: from}
	}

	g.refs[from] = append(g.refs[from], Reference{From: from, To: to, AttributePath: attributePath})
	if _, exists := fromNode.Deps[to]; !exists {
		fromNode.Deps[to] = toNode
		toNode.Dependents[from] = fromNode
	}
	return nil
}

// Node returns the node registered at the given address.
func (g *Graph) Node(addr string) (*Node, bool) {
	n, ok := g.nodes[addr]
	return n, ok
}

// Len returns the number of registered resources.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Resources returns a restartable sequence over all resources in
// declaration order.
func (g *Graph) Resources() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, n := range g.order {
			if !yield(n) {
				return
			}
		}
	}
}

// ReferencesOf returns the outgoing references of the node at the given
// address, in the order they were added.
func (g *Graph) ReferencesOf(addr string) []Reference {
	return g.refs[addr]
}
