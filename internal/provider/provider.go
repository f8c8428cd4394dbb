package provider

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// CreateRequest carries one resource's fully interpolated attributes to an
// adapter.
type CreateRequest struct {
	// Type is the resource type, e.g. "aws_vpc".
	Type string
	// Name is the logical name of the resource within the stack.
	Name string
	// Attributes are the resolved argument values. Every reference has
	// already been replaced with a concrete value.
	Attributes map[string]cty.Value
}

// CreateResult carries the live attributes an adapter observed after
// creating a resource, e.g. an assigned identifier.
type CreateResult struct {
	LiveAttributes map[string]cty.Value
}

// DeleteRequest identifies a previously created resource for destruction.
type DeleteRequest struct {
	Type string
	Name string
	// Attributes are the merged declared and live attributes recorded at
	// creation time, so the adapter can find the remote object.
	Attributes map[string]cty.Value
}

// ResourceSchema describes one resource type an adapter manages.
type ResourceSchema struct {
	// Type is the resource type this schema describes.
	Type string
	// Description is a short human-readable summary.
	Description string
	// Arguments names the attributes the adapter accepts on create.
	Arguments []string
	// Exports names the live attributes the adapter guarantees to populate
	// after a successful create. References to anything else on this type
	// are a configuration error caught before execution.
	Exports []string
}

// Provider is the adapter contract. Implementations translate the engine's
// type-agnostic requests into calls against a backing system.
type Provider interface {
	// Name identifies the adapter, e.g. "aws" or "mem".
	Name() string
	// Schemas enumerates every resource type the adapter manages.
	Schemas() []ResourceSchema
	// Create provisions a resource and returns its live attributes.
	Create(ctx context.Context, req *CreateRequest) (*CreateResult, error)
	// Delete destroys a previously created resource.
	Delete(ctx context.Context, req *DeleteRequest) error
}
