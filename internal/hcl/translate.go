// This file contains the logic for translating HCL schema structs into the
// format-agnostic stack model defined in the config package.

package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/infragrid/internal/config"
	"github.com/vk/infragrid/internal/schema"
)

// translateResource converts an HCL resource block into the agnostic model.
// The block's remainder body is flattened into a map of named attribute
// expressions; nested blocks are not part of the resource surface.
func (l *Loader) translateResource(r *schema.Resource) (*config.Resource, error) {
	args, err := extractBodyAttributes(r.Config)
	if err != nil {
		return nil, fmt.Errorf("resource %q %q: %w", r.Type, r.Name, err)
	}
	return &config.Resource{
		Type:      r.Type,
		Name:      r.Name,
		Arguments: args,
		DependsOn: r.DependsOn,
	}, nil
}

// translateOutput converts an HCL output block into the agnostic model.
func (l *Loader) translateOutput(o *schema.Output) *config.Output {
	return &config.Output{
		Name:        o.Name,
		Value:       o.Value,
		Description: o.Description,
		Sensitive:   o.Sensitive,
	}
}

// translateArtifact converts an HCL artifact block into the agnostic model.
func (l *Loader) translateArtifact(a *schema.Artifact) *config.Artifact {
	return &config.Artifact{
		Name:          a.Name,
		ContainerName: a.ContainerName,
		ImageURI:      a.ImageURI,
		Path:          a.Path,
	}
}

// translateSource converts an HCL source block into the agnostic model. The
// raw token string is wrapped in config.Secret at the translation boundary so
// nothing downstream ever holds it as a plain string.
func (l *Loader) translateSource(s *schema.Source) *config.Source {
	return &config.Source{
		Label:      s.Label,
		Owner:      s.Owner,
		Repository: s.Repository,
		Branch:     s.Branch,
		Token:      config.Secret(s.Token),
	}
}

// extractBodyAttributes flattens an HCL body into a map of attribute
// expressions. The expressions stay unevaluated; interpolation happens at
// execution time once upstream resources have published their live values.
func extractBodyAttributes(body hcl.Body) (map[string]hcl.Expression, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	exprMap := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprMap[name] = attr.Expr
	}
	return exprMap, nil
}
