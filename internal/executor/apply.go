package executor

import (
	"context"

	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/dag"
)

// Apply walks the graph in dependency order and creates every resource that
// is not already Created. It returns the per-resource outcome; the run as a
// whole only errors when the context is cancelled before completion.
//
// Re-applying a graph whose resources are all Created is a no-op.
func Apply(ctx context.Context, e *Executor) (*Result, error) {
	return e.Apply(ctx)
}

// Apply implements the reconciliation walk.
func (e *Executor) Apply(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	r := &run{skipped: make(map[string]bool)}
	readyChan := make(chan *dag.Node, e.graph.Len())

	// Seed counters for this run. Nodes created by a previous apply count
	// as done; failed nodes from a previous run are eligible again.
	active := 0
	for node := range e.graph.Resources() {
		node.SetInitialCounters()
		if node.State() != dag.Created {
			node.SetState(dag.Pending)
			node.Error = nil
			node.FailedAncestor = ""
			active++
		}
	}
	for node := range e.graph.Resources() {
		if node.State() == dag.Created {
			for _, dependent := range node.Dependents {
				dependent.DecrementDepCount()
			}
		}
	}
	for node := range e.graph.Resources() {
		if node.State() == dag.Pending && node.DepCount() == 0 {
			logger.Debug("Found ready node.", "nodeID", node.ID)
			readyChan <- node
		}
	}

	if active == 0 {
		logger.Info("All resources already created, nothing to do.")
		return &r.result, nil
	}

	r.wg.Add(active)

	logger.Debug("Starting worker pool.", "workers", e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		go e.worker(ctx, r, readyChan, i)
	}

	logger.Info("Waiting for all resources to reconcile...")
	r.wg.Wait()
	close(readyChan)
	logger.Info("Reconciliation walk complete.",
		"created", len(r.result.Created),
		"failed", len(r.result.Failed),
		"skipped", len(r.result.Skipped),
	)

	if err := ctx.Err(); err != nil {
		return &r.result, err
	}
	return &r.result, nil
}

// skipDependents recursively marks all downstream nodes as skipped. Their
// state stays Pending: a skipped node was never attempted, and a later
// re-apply may pick it up once its ancestor succeeds. rootCause is the
// failed upstream address, or empty when the skip comes from cancellation.
func (e *Executor) skipDependents(ctx context.Context, r *run, node *dag.Node, rootCause string) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range node.Dependents {
		if !r.recordSkipped(dependent.ID, rootCause) {
			continue
		}
		logger.Warn("Skipping resource due to upstream failure.",
			"nodeID", dependent.ID, "failed_dependency", rootCause)
		dependent.FailedAncestor = rootCause
		r.wg.Done()
		e.skipDependents(ctx, r, dependent, rootCause)
	}
}
