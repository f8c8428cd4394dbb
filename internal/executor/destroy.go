package executor

import (
	"context"
	"errors"

	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/dag"
	"github.com/vk/infragrid/internal/provider"
)

// Destroy walks the graph in reverse creation order and deletes every
// Created resource, so no resource is removed before its dependents. It
// keeps going past individual failures and returns them joined.
func (e *Executor) Destroy(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	order, err := dag.Resolve(e.graph)
	if err != nil {
		return err
	}

	var errs []error
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		if node.State() != dag.Created {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		nodeLogger := logger.With("resource", node.ID)
		nodeLogger.Info("🔥 Destroying resource")

		p, ok := e.registry.ProviderFor(node.Type)
		if !ok {
			errs = append(errs, &provider.Error{Address: node.ID, Err: errUnregisteredType(node.Type)})
			continue
		}

		callCtx := ctx
		if e.callTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, e.callTimeout)
			err = p.Delete(callCtx, &provider.DeleteRequest{
				Type:       node.Type,
				Name:       node.Name,
				Attributes: node.Live(),
			})
			cancel()
		} else {
			err = p.Delete(callCtx, &provider.DeleteRequest{
				Type:       node.Type,
				Name:       node.Name,
				Attributes: node.Live(),
			})
		}
		if err != nil {
			nodeLogger.Error("Failed to destroy resource.", "error", err)
			errs = append(errs, &provider.Error{Address: node.ID, Err: err})
			continue
		}

		node.PublishLive(nil)
		node.SetState(dag.Pending)
	}

	return errors.Join(errs...)
}
