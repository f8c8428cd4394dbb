package dag

import (
	"container/heap"
)

// Resolve computes a valid creation order for the graph: every resource
// appears after all resources it references. Resources with no remaining
// dependency are ordered by declaration index, so identical input always
// produces the identical order. A cycle fails with *CyclicDependencyError
// enumerating the full cycle.
func Resolve(g *Graph) ([]*Node, error) {
	remaining := make(map[string]int, g.Len())
	ready := &nodeHeap{}
	for node := range g.Resources() {
		remaining[node.ID] = len(node.Deps)
		if len(node.Deps) == 0 {
			heap.Push(ready, node)
		}
	}

	order := make([]*Node, 0, g.Len())
	for ready.Len() > 0 {
		node := heap.Pop(ready).(*Node)
		order = append(order, node)
		for _, dependent := range node.Dependents {
			remaining[dependent.ID]--
			if remaining[dependent.ID] == 0 {
				heap.Push(ready, dependent)
			}
		}
	}

	if len(order) != g.Len() {
		// Some nodes never became ready, so an unbroken cycle remains.
		if err := g.detectCycles(); err != nil {
			return nil, err
		}
		// Unreachable as long as detectCycles and this walk agree.
		return nil, &CyclicDependencyError{}
	}
	return order, nil
}

// nodeHeap is a min-heap of nodes keyed by declaration order.
type nodeHeap []*Node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].DeclOrder < h[j].DeclOrder }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)         { *h = append(*h, x.(*Node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	*h = old[:n-1]
	return node
}
