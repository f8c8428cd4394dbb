package executor

import (
	"context"

	"github.com/vk/infragrid/internal/config"
	"github.com/vk/infragrid/internal/interp"
	"github.com/zclconf/go-cty/cty"
)

// OutputValues evaluates output expressions against the reconciled graph.
// Only meaningful after a fully successful apply; an output referencing a
// resource that never reached Created fails with an unresolved reference.
func (e *Executor) OutputValues(ctx context.Context, outputs []*config.Output) (map[string]cty.Value, error) {
	return interp.EvaluateOutputs(ctx, e.graph, outputs)
}
