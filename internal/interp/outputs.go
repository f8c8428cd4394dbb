package interp

import (
	"context"
	"fmt"

	"github.com/vk/infragrid/internal/config"
	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/dag"
	"github.com/zclconf/go-cty/cty"
)

// EvaluateOutputs resolves every declared output against the fully
// reconciled graph. Callers invoke this only after a successful apply; an
// output referencing a resource that never reached Created fails with
// *UnresolvedReferenceError.
func EvaluateOutputs(ctx context.Context, g *dag.Graph, outputs []*config.Output) (map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	evalCtx := BuildEvalContext(ctx, g)

	values := make(map[string]cty.Value, len(outputs))
	for _, out := range outputs {
		val, err := Resolve(out.Value, evalCtx, g)
		if err != nil {
			return nil, fmt.Errorf("evaluating output %q: %w", out.Name, err)
		}
		values[out.Name] = val
	}
	logger.Debug("Evaluated outputs.", "count", len(values))
	return values, nil
}
