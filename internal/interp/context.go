package interp

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/dag"
	"github.com/zclconf/go-cty/cty"
)

// BuildEvalContext creates the HCL evaluation context holding the published
// attributes of every created resource, as nested objects under the
// `resource` variable: resource.<type>.<name>.<attribute>.
func BuildEvalContext(ctx context.Context, g *dag.Graph) *hcl.EvalContext {
	logger := ctxlog.FromContext(ctx)

	// map[type] -> map[name] -> object of published attributes
	byType := make(map[string]map[string]cty.Value)
	for node := range g.Resources() {
		if node.State() != dag.Created {
			continue
		}
		live := node.Live()
		attrs := make(map[string]cty.Value, len(live))
		for k, v := range live {
			attrs[k] = v
		}
		if len(attrs) == 0 {
			// A created resource with no attributes still needs a presence
			// in the context so whole-resource references evaluate.
			attrs["id"] = cty.NullVal(cty.String)
		}
		if _, ok := byType[node.Type]; !ok {
			byType[node.Type] = make(map[string]cty.Value)
		}
		byType[node.Type][node.Name] = cty.ObjectVal(attrs)
	}

	typeVals := make(map[string]cty.Value, len(byType))
	for typ, names := range byType {
		typeVals[typ] = cty.ObjectVal(names)
	}

	logger.Debug("Built evaluation context.", "resource_types", len(typeVals))
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"resource": cty.ObjectVal(typeVals),
		},
	}
}

// Resolve checks every resource reference in the expression against the
// published values and then evaluates it. A reference whose attribute path
// is absent after the producer's creation fails with
// *UnresolvedReferenceError naming the producer and the missing attribute.
func Resolve(expr hcl.Expression, evalCtx *hcl.EvalContext, g *dag.Graph) (cty.Value, error) {
	if err := checkReferences(expr, g); err != nil {
		return cty.NilVal, err
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}

// ResolveArguments resolves every declared attribute of a resource into a
// concrete value map, ready to hand to a provider adapter.
func ResolveArguments(ctx context.Context, node *dag.Node, evalCtx *hcl.EvalContext, g *dag.Graph) (map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	resolved := make(map[string]cty.Value, len(node.Config.Arguments))
	for name, expr := range node.Config.Arguments {
		val, err := Resolve(expr, evalCtx, g)
		if err != nil {
			return nil, err
		}
		resolved[name] = val
	}
	logger.Debug("Resolved resource arguments.", "resource", node.ID, "count", len(resolved))
	return resolved, nil
}

// checkReferences walks an expression's resource traversals and verifies
// each one lands on a published attribute.
func checkReferences(expr hcl.Expression, g *dag.Graph) error {
	for _, traversal := range expr.Variables() {
		addr, attrPath, ok := splitResourceTraversal(traversal)
		if !ok {
			continue
		}
		node, found := g.Node(addr)
		if !found || node.State() != dag.Created {
			// The resolver orders hard references before their consumers,
			// so a missing producer here means the reference was never a
			// hard edge; report it as unresolved rather than guessing.
			return &UnresolvedReferenceError{Address: addr, Attribute: attrPath}
		}
		if attrPath == "" {
			continue
		}
		live := node.Live()
		parts := strings.Split(attrPath, ".")
		val, present := live[parts[0]]
		if !present {
			return &UnresolvedReferenceError{Address: addr, Attribute: parts[0]}
		}
		// Walk the rest of the path through the published value so a
		// missing nested attribute names its producer instead of leaking
		// a raw evaluation diagnostic.
		for i, part := range parts[1:] {
			ty := val.Type()
			switch {
			case ty.IsObjectType() && ty.HasAttribute(part):
				val = val.GetAttr(part)
			case ty.IsMapType() && val.IsKnown() && !val.IsNull() && val.HasIndex(cty.StringVal(part)).True():
				val = val.Index(cty.StringVal(part))
			default:
				return &UnresolvedReferenceError{Address: addr, Attribute: strings.Join(parts[:i+2], ".")}
			}
		}
	}
	return nil
}

// splitResourceTraversal extracts the producer address and attribute path
// from a `resource.<type>.<name>[.<attribute>...]` traversal.
func splitResourceTraversal(traversal hcl.Traversal) (addr, attrPath string, ok bool) {
	if len(traversal) < 3 || traversal.RootName() != "resource" {
		return "", "", false
	}
	typeAttr, typeOk := traversal[1].(hcl.TraverseAttr)
	nameAttr, nameOk := traversal[2].(hcl.TraverseAttr)
	if !typeOk || !nameOk {
		return "", "", false
	}

	var parts []string
	for _, part := range traversal[3:] {
		attr, isAttr := part.(hcl.TraverseAttr)
		if !isAttr {
			break
		}
		parts = append(parts, attr.Name)
	}
	return dag.Address(typeAttr.Name, nameAttr.Name), strings.Join(parts, "."), true
}
