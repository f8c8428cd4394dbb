package executor

import (
	"context"

	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/dag"
	"github.com/vk/infragrid/internal/interp"
	"github.com/vk/infragrid/internal/provider"
	"github.com/zclconf/go-cty/cty"
)

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, r *run, readyChan chan *dag.Node, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for node := range readyChan {
		workerLogger := logger.With("workerID", workerID, "nodeID", node.ID)

		// A node can become ready through a successful parent after a
		// failed parent already skipped it.
		if r.isSkipped(node.ID) {
			continue
		}

		if ctx.Err() != nil {
			if r.recordSkipped(node.ID, "") {
				workerLogger.Warn("Context canceled, resource not attempted.")
				r.wg.Done()
				// Dependents of a cancel-skipped node will never see their
				// counters reach zero, so release them the same way a
				// failure does or Apply would wait on them forever.
				e.skipDependents(ctx, r, node, "")
			}
			continue
		}

		workerLogger.Debug("Worker picked up resource for reconciliation.")
		if err := e.reconcile(ctx, node); err != nil {
			workerLogger.Error("Resource reconciliation failed.", "error", err)
			node.SetState(dag.Failed)
			node.Error = err
			r.recordFailed(node.ID, err)
			// The failure stays confined to this node's dependent subtree;
			// independent branches keep running.
			e.skipDependents(ctx, r, node, node.ID)
			r.wg.Done()
			continue
		}

		workerLogger.Debug("Resource reconciliation succeeded.")
		r.recordCreated(node.ID)

		// The live map was published before the state flip, so dependents
		// unlocked below always observe the producer's values.
		for _, dependent := range node.Dependents {
			if dependent.DecrementDepCount() == 0 {
				workerLogger.Debug("Unlocking dependent resource.", "dependentID", dependent.ID)
				readyChan <- dependent
			}
		}

		r.wg.Done()
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

// reconcile drives one node through Interpolating and Creating to Created.
func (e *Executor) reconcile(ctx context.Context, node *dag.Node) error {
	logger := ctxlog.FromContext(ctx).With("resource", node.ID)
	logger.Info("▶️ Creating resource")

	node.SetState(dag.Interpolating)
	evalCtx := interp.BuildEvalContext(ctx, e.graph)
	args, err := interp.ResolveArguments(ctx, node, evalCtx, e.graph)
	if err != nil {
		return err
	}

	p, ok := e.registry.ProviderFor(node.Type)
	if !ok {
		// Build validates types up front, so this is a programmer error.
		return &provider.Error{Address: node.ID, Err: errUnregisteredType(node.Type)}
	}

	node.SetState(dag.Creating)
	callCtx := ctx
	if e.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.callTimeout)
		defer cancel()
	}

	result, err := p.Create(callCtx, &provider.CreateRequest{
		Type:       node.Type,
		Name:       node.Name,
		Attributes: args,
	})
	if err != nil {
		return &provider.Error{Address: node.ID, Err: err}
	}

	// Merge live attributes over the resolved arguments; values observed by
	// the adapter win.
	merged := make(map[string]cty.Value, len(args)+len(result.LiveAttributes))
	for k, v := range args {
		merged[k] = v
	}
	for k, v := range result.LiveAttributes {
		merged[k] = v
	}
	node.PublishLive(merged)
	node.SetState(dag.Created)

	logger.Info("✅ Resource created")
	return nil
}

func (r *run) isSkipped(addr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped[addr]
}
