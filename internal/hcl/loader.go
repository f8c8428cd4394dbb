package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/infragrid/internal/config"
	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/fsutil"
	"github.com/vk/infragrid/internal/schema"
)

// Loader implements config.Loader for HCL stack files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers all .hcl files under the given paths, parses them, and
// translates the declared blocks into a single unified stack model. Files
// are processed in the order fsutil returns them so declaration order is
// stable across runs with identical input.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Stack, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find stack files in %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered stack files.", "count", len(files))

	stack := &config.Stack{}
	if len(files) == 0 {
		logger.Warn("No .hcl stack files found, returning empty stack.", "paths", paths)
		return stack, nil
	}

	parser := hclparse.NewParser()
	for _, file := range files {
		if err := l.loadFile(ctx, file, parser, stack); err != nil {
			return nil, err
		}
	}

	logger.Debug("Stack loaded.",
		"resources", len(stack.Resources),
		"outputs", len(stack.Outputs),
		"artifacts", len(stack.Artifacts),
	)
	return stack, nil
}

// loadFile parses a single HCL file and appends its blocks to the stack.
func (l *Loader) loadFile(ctx context.Context, filePath string, parser *hclparse.Parser, stack *config.Stack) error {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	var parsed schema.StackFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	for _, r := range parsed.Resources {
		res, err := l.translateResource(r)
		if err != nil {
			return fmt.Errorf("in file %s: %w", filePath, err)
		}
		res.DeclOrder = len(stack.Resources)
		stack.Resources = append(stack.Resources, res)
	}
	for _, o := range parsed.Outputs {
		stack.Outputs = append(stack.Outputs, l.translateOutput(o))
	}
	for _, a := range parsed.Artifacts {
		stack.Artifacts = append(stack.Artifacts, l.translateArtifact(a))
	}
	for _, s := range parsed.Sources {
		stack.Sources = append(stack.Sources, l.translateSource(s))
	}
	return nil
}
