package dag

import (
	"sync"
	"sync/atomic"

	"github.com/vk/infragrid/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// State tracks a node through its reconciliation lifecycle.
type State int32

const (
	// Pending means the node has not been picked up by a worker yet. A node
	// whose ancestor failed stays Pending forever.
	Pending State = iota
	// Interpolating means a worker is resolving the node's attribute
	// expressions against already-published live values.
	Interpolating
	// Creating means the provider adapter call is in flight.
	Creating
	// Created means the adapter succeeded and the node's live attributes
	// have been published.
	Created
	// Failed means interpolation or the adapter call failed.
	Failed
)

// String returns a human-readable state name for logs.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Interpolating:
		return "interpolating"
	case Creating:
		return "creating"
	case Created:
		return "created"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Node is a single typed resource in the graph.
type Node struct {
	// ID is the stable resource address, "<type>.<name>". Adjacency is keyed
	// by address rather than pointer identity so the structure stays
	// serializable and diffable across runs.
	ID   string
	Type string
	Name string

	// Config is the declared resource block this node was created from.
	Config *config.Resource

	// Deps holds the nodes this node depends on, keyed by address.
	Deps map[string]*Node
	// Dependents holds the nodes that depend on this node, keyed by address.
	Dependents map[string]*Node

	// DeclOrder is the declaration index, used as the stable tie-break when
	// ordering nodes with no remaining dependency.
	DeclOrder int

	// Error records why the node failed, if it did.
	Error error
	// FailedAncestor is the address of the failed upstream node that caused
	// this node to be skipped, when it was.
	FailedAncestor string

	state    atomic.Int32
	depCount atomic.Int32

	// mu guards live. The live map is written exactly once, by the single
	// worker that created the resource, before dependents are scheduled; the
	// lock only covers the publish against readers on other workers.
	mu   sync.RWMutex
	live map[string]cty.Value
}

// State returns the node's current lifecycle state.
func (n *Node) State() State {
	return State(n.state.Load())
}

// SetState transitions the node to a new lifecycle state.
func (n *Node) SetState(s State) {
	n.state.Store(int32(s))
}

// SetInitialCounters seeds the remaining-dependency counter after linking.
func (n *Node) SetInitialCounters() {
	n.depCount.Store(int32(len(n.Deps)))
}

// DecrementDepCount atomically decrements the remaining-dependency counter
// and returns the new value. A node becomes ready when this reaches zero.
func (n *Node) DecrementDepCount() int32 {
	return n.depCount.Add(-1)
}

// DepCount returns the current remaining-dependency count.
func (n *Node) DepCount() int32 {
	return n.depCount.Load()
}

// PublishLive records the node's resolved and live attributes. Called
// exactly once, by the creating worker, before dependents are unlocked.
func (n *Node) PublishLive(vals map[string]cty.Value) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.live = vals
}

// Live returns the node's published attribute map, or nil if the node has
// not been created yet.
func (n *Node) Live() map[string]cty.Value {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.live
}
