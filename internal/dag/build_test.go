package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/infragrid/internal/config"
)

func TestBuild(t *testing.T) {
	ctx := testContext(t)
	reg := testRegistry(t)

	t.Run("links implicit dependencies from expressions", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_vpc", "main", 0, map[string]string{
				"cidr_block": `"10.0.0.0/16"`,
			}),
			testResource(t, "aws_subnet", "a", 1, map[string]string{
				"vpc_id":     "resource.aws_vpc.main.id",
				"cidr_block": `"10.0.1.0/24"`,
			}),
		}}

		g, err := Build(ctx, stack, reg)
		require.NoError(t, err)

		subnet, ok := g.Node("aws_subnet.a")
		require.True(t, ok)
		assert.Contains(t, subnet.Deps, "aws_vpc.main")
		assert.EqualValues(t, 1, subnet.DepCount())

		refs := g.ReferencesOf("aws_subnet.a")
		require.Len(t, refs, 1)
		assert.Equal(t, "id", refs[0].AttributePath)
	})

	t.Run("links explicit depends_on with an empty attribute path", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_vpc", "main", 0, nil),
			testResource(t, "aws_subnet", "a", 1, nil, "aws_vpc.main"),
		}}

		g, err := Build(ctx, stack, reg)
		require.NoError(t, err)

		refs := g.ReferencesOf("aws_subnet.a")
		require.Len(t, refs, 1)
		assert.Equal(t, "", refs[0].AttributePath)
	})

	t.Run("rejects unknown resource types", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_quantum_router", "main", 0, nil),
		}}

		_, err := Build(ctx, stack, reg)
		require.ErrorContains(t, err, `no provider registered for type "aws_quantum_router"`)
	})

	t.Run("rejects duplicate declarations", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_vpc", "main", 0, nil),
			testResource(t, "aws_vpc", "main", 1, nil),
		}}

		_, err := Build(ctx, stack, reg)
		var dupErr *DuplicateResourceError
		require.ErrorAs(t, err, &dupErr)
	})

	t.Run("rejects references to undeclared resources", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_subnet", "a", 0, map[string]string{
				"vpc_id": "resource.aws_vpc.ghost.id",
			}),
		}}

		_, err := Build(ctx, stack, reg)
		var unknownErr *UnknownResourceError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "aws_vpc.ghost", unknownErr.Address)
		assert.Equal(t, "aws_subnet.a", unknownErr.ReferencedBy)
	})

	t.Run("rejects references to undeclared attributes", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_vpc", "main", 0, map[string]string{
				"cidr_block": `"10.0.0.0/16"`,
			}),
			testResource(t, "aws_subnet", "a", 1, map[string]string{
				"vpc_id": "resource.aws_vpc.main.flux_capacitance",
			}),
		}}

		_, err := Build(ctx, stack, reg)
		require.ErrorContains(t, err, `undeclared attribute "flux_capacitance"`)
	})

	t.Run("accepts references to declared arguments and provider exports", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_vpc", "main", 0, map[string]string{
				"cidr_block": `"10.0.0.0/16"`,
			}),
			testResource(t, "aws_subnet", "a", 1, map[string]string{
				// id is a provider export, cidr_block a declared argument.
				"vpc_id":     "resource.aws_vpc.main.id",
				"cidr_block": "resource.aws_vpc.main.cidr_block",
			}),
		}}

		_, err := Build(ctx, stack, reg)
		require.NoError(t, err)
	})

	t.Run("rejects self references", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_vpc", "main", 0, nil, "aws_vpc.main"),
		}}

		_, err := Build(ctx, stack, reg)
		require.ErrorContains(t, err, "cannot depend on itself")
	})

	t.Run("validates output references without adding edges", func(t *testing.T) {
		stack := &config.Stack{
			Resources: []*config.Resource{
				testResource(t, "aws_vpc", "main", 0, nil),
			},
			Outputs: []*config.Output{
				{Name: "vpc_id", Value: testExpr(t, "resource.aws_vpc.main.id")},
			},
		}

		g, err := Build(ctx, stack, reg)
		require.NoError(t, err)
		vpc, _ := g.Node("aws_vpc.main")
		assert.Empty(t, vpc.Dependents)

		stack.Outputs[0] = &config.Output{Name: "bad", Value: testExpr(t, "resource.aws_vpc.ghost.id")}
		_, err = Build(ctx, stack, reg)
		var unknownErr *UnknownResourceError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, `output "bad"`, unknownErr.ReferencedBy)
	})
}

func TestDetectCycles(t *testing.T) {
	ctx := testContext(t)
	reg := testRegistry(t)

	t.Run("two node cycle is enumerated in full", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_vpc", "a", 0, nil, "aws_vpc.b"),
			testResource(t, "aws_vpc", "b", 1, nil, "aws_vpc.a"),
		}}

		_, err := Build(ctx, stack, reg)
		var cycleErr *CyclicDependencyError
		require.ErrorAs(t, err, &cycleErr)
		assert.ElementsMatch(t, []string{"aws_vpc.a", "aws_vpc.b"}, cycleErr.Cycle)
		assert.Contains(t, cycleErr.Error(), " -> ")
	})

	t.Run("three node cycle reports only its members", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			// d is outside the cycle and must not be reported.
			testResource(t, "aws_vpc", "d", 0, nil),
			testResource(t, "aws_vpc", "a", 1, nil, "aws_vpc.c", "aws_vpc.d"),
			testResource(t, "aws_vpc", "b", 2, nil, "aws_vpc.a"),
			testResource(t, "aws_vpc", "c", 3, nil, "aws_vpc.b"),
		}}

		_, err := Build(ctx, stack, reg)
		var cycleErr *CyclicDependencyError
		require.ErrorAs(t, err, &cycleErr)
		assert.ElementsMatch(t, []string{"aws_vpc.a", "aws_vpc.b", "aws_vpc.c"}, cycleErr.Cycle)
	})

	t.Run("implicit and explicit edges fold into one check", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_vpc", "a", 0, map[string]string{
				"cidr_block": "resource.aws_subnet.b.cidr_block",
			}),
			testResource(t, "aws_subnet", "b", 1, map[string]string{
				"cidr_block": `"10.0.1.0/24"`,
			}, "aws_vpc.a"),
		}}

		_, err := Build(ctx, stack, reg)
		var cycleErr *CyclicDependencyError
		require.ErrorAs(t, err, &cycleErr)
	})

	t.Run("diamond is not a cycle", func(t *testing.T) {
		stack := &config.Stack{Resources: []*config.Resource{
			testResource(t, "aws_vpc", "root", 0, nil),
			testResource(t, "aws_subnet", "left", 1, nil, "aws_vpc.root"),
			testResource(t, "aws_subnet", "right", 2, nil, "aws_vpc.root"),
			testResource(t, "aws_route_table", "join", 3, nil, "aws_subnet.left", "aws_subnet.right"),
		}}

		_, err := Build(ctx, stack, reg)
		require.NoError(t, err)
	})
}
