package dag

import (
	"slices"
	"sort"
)

// detectCycles checks for circular dependencies using depth-first search.
// When a cycle is found, the returned *CyclicDependencyError enumerates
// every node on it, in traversal order, for diagnostics.
func (g *Graph) detectCycles() error {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)
	var stack []string

	var visit func(node *Node) error
	visit = func(node *Node) error {
		visiting[node.ID] = true
		stack = append(stack, node.ID)

		for _, dep := range sortedDeps(node) {
			if visiting[dep.ID] {
				// The cycle is the portion of the stack from the node we
				// just re-entered down to the current node.
				start := slices.Index(stack, dep.ID)
				return &CyclicDependencyError{Cycle: slices.Clone(stack[start:])}
			}
			if !visited[dep.ID] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		delete(visiting, node.ID)
		visited[node.ID] = true
		return nil
	}

	for node := range g.Resources() {
		if !visited[node.ID] {
			if err := visit(node); err != nil {
				return err
			}
		}
	}
	return nil
}

// sortedDeps returns a node's dependencies in a deterministic order so
// cycle reports are stable across runs.
func sortedDeps(node *Node) []*Node {
	deps := make([]*Node, 0, len(node.Deps))
	for _, dep := range node.Deps {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].DeclOrder < deps[j].DeclOrder })
	return deps
}
