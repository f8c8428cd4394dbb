package app

import (
	"context"
	"fmt"

	"github.com/vk/infragrid/internal/artifact"
	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/dag"
	"github.com/vk/infragrid/internal/executor"
	"github.com/vk/infragrid/internal/interp"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	for _, src := range a.stack.Sources {
		// The token is credential material and is deliberately left out.
		a.logger.Info("Source collaborator configured.",
			"label", src.Label,
			"owner", src.Owner,
			"repository", src.Repository,
			"branch", src.Branch,
		)
	}

	a.logger.Debug("Building dependency graph from config model...")
	graph, err := dag.Build(ctx, a.stack, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Debug("Dependency graph built.", "node_count", graph.Len())

	exec := executor.New(graph, appConfig.WorkerCount, a.registry,
		executor.WithCallTimeout(appConfig.ProviderTimeout))

	if appConfig.Destroy {
		a.logger.Info("🔥 Starting destroy...")
		if err := exec.Destroy(ctx); err != nil {
			return fmt.Errorf("destroy failed: %w", err)
		}
		a.logger.Info("🏁 Destroy finished.")
		return nil
	}

	a.logger.Info("🚀 Starting concurrent reconciliation...")
	result, err := exec.Apply(ctx)
	if err != nil {
		return fmt.Errorf("apply aborted: %w", err)
	}
	a.logger.Info("🏁 Reconciliation finished.",
		"created", len(result.Created),
		"failed", len(result.Failed),
		"skipped", len(result.Skipped),
	)

	if applyErr := result.Err(); applyErr != nil {
		// Outputs and artifacts are only produced for a fully converged
		// stack; a partial apply reports what failed instead.
		return applyErr
	}

	if err := a.writeOutputs(ctx, exec); err != nil {
		return err
	}
	return a.writeArtifacts(ctx, graph)
}

// writeOutputs evaluates every declared output against the reconciled graph
// and prints them to the application writer.
func (a *App) writeOutputs(ctx context.Context, exec *executor.Executor) error {
	if len(a.stack.Outputs) == 0 {
		return nil
	}

	values, err := exec.OutputValues(ctx, a.stack.Outputs)
	if err != nil {
		return fmt.Errorf("failed to evaluate outputs: %w", err)
	}

	fmt.Fprintln(a.outW, "\nOutputs:")
	for _, out := range a.stack.Outputs {
		if out.Sensitive {
			fmt.Fprintf(a.outW, "  %s = <sensitive>\n", out.Name)
			continue
		}
		rendered, err := interp.GoValue(values[out.Name])
		if err != nil {
			return fmt.Errorf("failed to render output %q: %w", out.Name, err)
		}
		fmt.Fprintf(a.outW, "  %s = %v\n", out.Name, rendered)
	}
	return nil
}

// writeArtifacts resolves the declared artifact descriptors and writes one
// image-definitions document per target path.
func (a *App) writeArtifacts(ctx context.Context, graph *dag.Graph) error {
	if len(a.stack.Artifacts) == 0 {
		return nil
	}

	evalCtx := interp.BuildEvalContext(ctx, graph)
	byPath := make(map[string]artifact.Definitions)
	var paths []string

	for _, art := range a.stack.Artifacts {
		nameVal, err := interp.Resolve(art.ContainerName, evalCtx, graph)
		if err != nil {
			return fmt.Errorf("failed to resolve container name for artifact %q: %w", art.Name, err)
		}
		name, err := interp.StringValue(nameVal)
		if err != nil {
			return fmt.Errorf("artifact %q container name: %w", art.Name, err)
		}

		uriVal, err := interp.Resolve(art.ImageURI, evalCtx, graph)
		if err != nil {
			return fmt.Errorf("failed to resolve image URI for artifact %q: %w", art.Name, err)
		}
		uri, err := interp.StringValue(uriVal)
		if err != nil {
			return fmt.Errorf("artifact %q image URI: %w", art.Name, err)
		}

		if _, seen := byPath[art.Path]; !seen {
			paths = append(paths, art.Path)
		}
		byPath[art.Path] = append(byPath[art.Path], artifact.ContainerImage{
			Name:     name,
			ImageURI: uri,
		})
	}

	for _, path := range paths {
		if err := byPath[path].Write(path); err != nil {
			return err
		}
		a.logger.Info("✅ Artifact descriptor written.", "path", path, "entries", len(byPath[path]))
	}
	return nil
}
