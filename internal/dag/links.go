package dag

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/provider"
)

// linkNodes performs the second pass, establishing dependency links from
// explicit depends_on declarations and from references inside attribute
// expressions.
func linkNodes(ctx context.Context, graph *Graph, reg *provider.Registry) error {
	for node := range graph.Resources() {
		if err := linkExplicitDeps(ctx, node, graph); err != nil {
			return err
		}
		for _, expr := range node.Config.Arguments {
			if err := linkImplicitDeps(ctx, node, expr, graph, reg); err != nil {
				return err
			}
		}
	}
	return nil
}

// linkExplicitDeps resolves ordering hints from a `depends_on` list. These
// edges carry no attribute path; they fold into the same acyclicity check
// as hard references.
func linkExplicitDeps(ctx context.Context, node *Node, graph *Graph) error {
	logger := ctxlog.FromContext(ctx)
	for _, depAddr := range node.Config.DependsOn {
		depNode, found := graph.Node(depAddr)
		if !found {
			return &UnknownResourceError{Address: depAddr, ReferencedBy: node.ID}
		}
		if depNode.ID == node.ID {
			return fmt.Errorf("resource %s cannot depend on itself", node.ID)
		}
		logger.Debug("Linking explicit dependency.", "from", node.ID, "to", depNode.ID)
		if err := graph.AddReference(node.ID, depNode.ID, ""); err != nil {
			return err
		}
	}
	return nil
}

// linkImplicitDeps parses an expression for resource traversals and creates
// a hard reference edge for each one.
func linkImplicitDeps(ctx context.Context, node *Node, expr hcl.Expression, graph *Graph, reg *provider.Registry) error {
	logger := ctxlog.FromContext(ctx)
	for _, traversal := range expr.Variables() {
		ref, ok := parseResourceTraversal(traversal)
		if !ok {
			continue
		}

		depNode, found := graph.Node(ref.Address)
		if !found {
			return &UnknownResourceError{Address: ref.Address, ReferencedBy: node.ID}
		}
		if depNode.ID == node.ID {
			return fmt.Errorf("resource %s cannot reference itself", node.ID)
		}
		if err := validateAttribute(node.ID, depNode, ref.Attribute, reg); err != nil {
			return err
		}

		logger.Debug("Linking implicit dependency.", "from", node.ID, "to", ref.Address, "attribute", ref.Attribute)
		if err := graph.AddReference(node.ID, ref.Address, ref.Attribute); err != nil {
			return err
		}
	}
	return nil
}

// resourceRef is a parsed `resource.<type>.<name>[.<attribute>...]`
// traversal.
type resourceRef struct {
	Address   string
	Attribute string
}

// parseResourceTraversal analyzes an HCL traversal and extracts a resource
// reference from it. Traversals rooted elsewhere are not resource
// references and are ignored by the linker.
func parseResourceTraversal(traversal hcl.Traversal) (*resourceRef, bool) {
	if len(traversal) < 3 || traversal.RootName() != "resource" {
		return nil, false
	}
	typeAttr, typeOk := traversal[1].(hcl.TraverseAttr)
	nameAttr, nameOk := traversal[2].(hcl.TraverseAttr)
	if !typeOk || !nameOk {
		return nil, false
	}

	ref := &resourceRef{Address: Address(typeAttr.Name, nameAttr.Name)}
	if len(traversal) > 3 {
		var parts []string
		for _, part := range traversal[3:] {
			attr, ok := part.(hcl.TraverseAttr)
			if !ok {
				break
			}
			parts = append(parts, attr.Name)
		}
		ref.Attribute = strings.Join(parts, ".")
	}
	return ref, true
}

// validateAttribute checks that a referenced attribute is one the producer
// either declares literally or is guaranteed to populate after creation.
func validateAttribute(from string, depNode *Node, attribute string, reg *provider.Registry) error {
	if attribute == "" {
		return nil
	}
	root := attribute
	if i := strings.IndexByte(attribute, '.'); i >= 0 {
		root = attribute[:i]
	}

	if _, declared := depNode.Config.Arguments[root]; declared {
		return nil
	}
	schema, ok := reg.Schema(depNode.Type)
	if !ok {
		return fmt.Errorf("internal error: no schema for resource type %q", depNode.Type)
	}
	for _, export := range schema.Exports {
		if export == root {
			return nil
		}
	}
	return fmt.Errorf("%s: reference to undeclared attribute %q on resource %q", from, root, depNode.ID)
}

// validateReferences checks every resource traversal in an expression
// against the graph, without creating edges. Used for outputs and
// artifacts.
func validateReferences(owner string, expr hcl.Expression, graph *Graph, reg *provider.Registry) error {
	if expr == nil {
		return nil
	}
	for _, traversal := range expr.Variables() {
		ref, ok := parseResourceTraversal(traversal)
		if !ok {
			continue
		}
		depNode, found := graph.Node(ref.Address)
		if !found {
			return &UnknownResourceError{Address: ref.Address, ReferencedBy: owner}
		}
		if err := validateAttribute(owner, depNode, ref.Attribute, reg); err != nil {
			return err
		}
	}
	return nil
}
