package provider

import "fmt"

// Error wraps an adapter failure with the identity of the resource whose
// creation or deletion failed, so every failure stays attributable to
// exactly one resource.
type Error struct {
	// Address is the stable resource address, e.g. "aws_vpc.main".
	Address string
	// Err is the underlying adapter error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider error for %s: %v", e.Address, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
