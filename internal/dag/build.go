package dag

import (
	"context"
	"fmt"

	"github.com/vk/infragrid/internal/config"
	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/provider"
)

// Build constructs a complete, validated dependency graph from a stack
// model. Structural defects (duplicate declarations, unknown resource
// types, dangling references, cycles) abort the build; nothing is ever
// created for a structurally broken stack.
func Build(ctx context.Context, stack *config.Stack, reg *provider.Registry) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")
	graph := New()

	// First pass: create all nodes.
	for _, res := range stack.Resources {
		if _, ok := reg.Schema(res.Type); !ok {
			return nil, fmt.Errorf("resource %s: no provider registered for type %q", Address(res.Type, res.Name), res.Type)
		}
		if _, err := graph.AddResource(res); err != nil {
			return nil, err
		}
	}
	logger.Debug("Build: Node creation complete.", "node_count", graph.Len())

	// Second pass: link dependencies.
	if err := linkNodes(ctx, graph, reg); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node linking complete.")

	// Outputs and artifacts are evaluated only after a full reconcile, so
	// they contribute no edges, but dangling references in them are still
	// configuration defects caught here.
	if err := validateStackExpressions(stack, graph, reg); err != nil {
		return nil, err
	}

	// Third pass: initialize counters.
	for node := range graph.Resources() {
		node.SetInitialCounters()
	}

	if err := graph.detectCycles(); err != nil {
		return nil, err
	}
	logger.Debug("Build: Cycle detection passed.")

	logger.Debug("Build: Graph construction successful.")
	return graph, nil
}

// validateStackExpressions checks output and artifact expressions for
// references to resources or attributes that do not exist.
func validateStackExpressions(stack *config.Stack, graph *Graph, reg *provider.Registry) error {
	for _, out := range stack.Outputs {
		if err := validateReferences(fmt.Sprintf("output %q", out.Name), out.Value, graph, reg); err != nil {
			return err
		}
	}
	for _, art := range stack.Artifacts {
		label := fmt.Sprintf("artifact %q", art.Name)
		if err := validateReferences(label, art.ContainerName, graph, reg); err != nil {
			return err
		}
		if err := validateReferences(label, art.ImageURI, graph, reg); err != nil {
			return err
		}
	}
	return nil
}
