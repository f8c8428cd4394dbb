package dag

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"
	"github.com/vk/infragrid/internal/config"
	"github.com/vk/infragrid/internal/ctxlog"
	"github.com/vk/infragrid/internal/provider"
	"github.com/vk/infragrid/internal/provider/mem"
)

// testContext returns a context carrying a discard logger, since graph
// construction requires one.
func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

// testRegistry returns a registry backed by the in-memory provider.
func testRegistry(t *testing.T) *provider.Registry {
	t.Helper()
	reg := provider.NewRegistry()
	reg.Register(mem.New())
	return reg
}

// testExpr parses a single HCL expression from source.
func testExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "expression %q must parse: %s", src, diags)
	return expr
}

// testResource builds a resource whose argument values are HCL expression
// sources.
func testResource(t *testing.T, typ, name string, declOrder int, args map[string]string, dependsOn ...string) *config.Resource {
	t.Helper()
	res := &config.Resource{
		Type:      typ,
		Name:      name,
		DeclOrder: declOrder,
		DependsOn: dependsOn,
	}
	if len(args) > 0 {
		res.Arguments = make(map[string]hcl.Expression, len(args))
		for k, src := range args {
			res.Arguments[k] = testExpr(t, src)
		}
	}
	return res
}

// addressesOf projects nodes onto their addresses for order assertions.
func addressesOf(nodes []*Node) []string {
	addrs := make([]string, len(nodes))
	for i, n := range nodes {
		addrs[i] = n.ID
	}
	return addrs
}
