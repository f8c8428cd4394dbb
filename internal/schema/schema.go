package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Resource represents a `resource` block from a user's stack file. The
// resource's attributes live in the remainder body so that arbitrary
// provider-specific arguments can be declared without a fixed schema.
type Resource struct {
	Type      string   `hcl:"type,label"`
	Name      string   `hcl:"name,label"`
	DependsOn []string `hcl:"depends_on,optional"`
	Config    hcl.Body `hcl:",remain"`
}

// Output represents an `output` block: a named expression evaluated after
// the stack has been fully reconciled.
type Output struct {
	Name        string         `hcl:"name,label"`
	Value       hcl.Expression `hcl:"value"`
	Description string         `hcl:"description,optional"`
	Sensitive   bool           `hcl:"sensitive,optional"`
}

// Artifact represents an `artifact` block describing a deployable artifact
// descriptor to write after apply.
type Artifact struct {
	Name          string         `hcl:"name,label"`
	ContainerName hcl.Expression `hcl:"container_name"`
	ImageURI      hcl.Expression `hcl:"image_uri"`
	Path          string         `hcl:"path"`
}

// Source represents a `source` block carrying source-control collaborator
// coordinates, including an authentication token.
type Source struct {
	Label      string `hcl:"label,label"`
	Owner      string `hcl:"owner"`
	Repository string `hcl:"repository"`
	Branch     string `hcl:"branch,optional"`
	Token      string `hcl:"token,optional"`
}

// StackFile represents the top-level structure of a user's stack file.
type StackFile struct {
	Resources []*Resource `hcl:"resource,block"`
	Outputs   []*Output   `hcl:"output,block"`
	Artifacts []*Artifact `hcl:"artifact,block"`
	Sources   []*Source   `hcl:"source,block"`
	Body      hcl.Body    `hcl:",remain"`
}
