package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Stack is the unified, format-agnostic representation of everything a user
// declared: resources, outputs, artifact descriptors and source-control
// collaborators.
type Stack struct {
	Resources []*Resource
	Outputs   []*Output
	Artifacts []*Artifact
	Sources   []*Source
}

// Resource is the format-agnostic representation of a `resource` block.
// DeclOrder records the position of the block across all loaded files and is
// the tie-breaker that keeps apply order reproducible between runs.
type Resource struct {
	Type      string
	Name      string
	Arguments map[string]hcl.Expression
	DependsOn []string
	DeclOrder int
}

// Output is a named expression over the stack, evaluated only after the
// graph has been fully reconciled.
type Output struct {
	Name        string
	Value       hcl.Expression
	Description string
	Sensitive   bool
}

// Artifact describes a deployable artifact descriptor to write after a
// successful apply. The descriptor shape is a fixed external contract
// consumed by the build collaborator.
type Artifact struct {
	Name          string
	ContainerName hcl.Expression
	ImageURI      hcl.Expression
	Path          string
}

// Source carries the build input coordinates for a source-control
// collaborator. The token is opaque credential material and must never
// appear in logs.
type Source struct {
	Label      string
	Owner      string
	Repository string
	Branch     string
	Token      Secret
}
