package dag

import (
	"fmt"
	"strings"
)

// DuplicateResourceError reports a second declaration of an already
// registered (type, name) pair.
type DuplicateResourceError struct {
	Type string
	Name string
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("duplicate resource: %s.%s is already declared", e.Type, e.Name)
}

// UnknownResourceError reports a reference to a resource address that was
// never declared.
type UnknownResourceError struct {
	// Address is the resource address that could not be found.
	Address string
	// ReferencedBy is the address of the resource (or the name of the
	// output) holding the dangling reference, when known.
	ReferencedBy string
}

func (e *UnknownResourceError) Error() string {
	if e.ReferencedBy == "" {
		return fmt.Sprintf("unknown resource: %s", e.Address)
	}
	return fmt.Sprintf("unknown resource: %s references non-existent resource %s", e.ReferencedBy, e.Address)
}

// CyclicDependencyError reports a dependency cycle. Cycle holds the address
// of every node on the cycle, in traversal order.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	if len(e.Cycle) == 0 {
		return "dependency cycle detected"
	}
	return fmt.Sprintf("dependency cycle detected: %s -> %s",
		strings.Join(e.Cycle, " -> "), e.Cycle[0])
}
