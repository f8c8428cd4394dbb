package executor

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ResourceFailure attributes one failure to exactly one resource.
type ResourceFailure struct {
	// Address is the failed resource's address.
	Address string
	// Err is the failure: a *provider.Error, an
	// *interp.UnresolvedReferenceError, or a context error.
	Err error
}

// SkippedResource records a resource that was never attempted because an
// upstream dependency failed.
type SkippedResource struct {
	// Address is the skipped resource's address.
	Address string
	// FailedDependency is the address of the upstream resource whose
	// failure caused the skip.
	FailedDependency string
}

// Result is the outcome of one apply run.
type Result struct {
	// Created lists the addresses of resources created during this run, in
	// completion order. Resources already created by a previous run are not
	// listed again.
	Created []string
	// Failed lists every resource whose interpolation or provider call
	// failed.
	Failed []ResourceFailure
	// Skipped lists every resource left untouched because of an upstream
	// failure.
	Skipped []SkippedResource
}

// Err summarizes the run as a single error, or nil if everything that was
// attempted succeeded.
func (r *Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	addrs := make([]string, 0, len(r.Failed))
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		addrs = append(addrs, f.Address)
		errs = append(errs, f.Err)
	}
	sort.Strings(addrs)
	return fmt.Errorf("apply failed for %s: %w", strings.Join(addrs, ", "), errors.Join(errs...))
}
