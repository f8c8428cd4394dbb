package interp

import "fmt"

// UnresolvedReferenceError reports a reference to an attribute that is
// absent even though the producing resource has been created. This signals
// either an incomplete provider adapter response or a configuration error;
// it is always surfaced, never silently defaulted.
type UnresolvedReferenceError struct {
	// Address is the producing resource's address.
	Address string
	// Attribute is the missing attribute path on the producer.
	Attribute string
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("unresolved reference: resource %s has published no attributes", e.Address)
	}
	return fmt.Sprintf("unresolved reference: resource %s has no attribute %q", e.Address, e.Attribute)
}
