package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/infragrid/internal/config"
)

func TestAddResource(t *testing.T) {
	t.Run("registers a node per declaration", func(t *testing.T) {
		g := New()
		node, err := g.AddResource(&config.Resource{Type: "aws_vpc", Name: "main"})
		require.NoError(t, err)
		assert.Equal(t, "aws_vpc.main", node.ID)
		assert.Equal(t, 1, g.Len())

		got, ok := g.Node("aws_vpc.main")
		require.True(t, ok)
		assert.Same(t, node, got)
	})

	t.Run("rejects a duplicate (type, name) pair", func(t *testing.T) {
		g := New()
		_, err := g.AddResource(&config.Resource{Type: "aws_vpc", Name: "main"})
		require.NoError(t, err)

		_, err = g.AddResource(&config.Resource{Type: "aws_vpc", Name: "main"})
		var dupErr *DuplicateResourceError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "aws_vpc", dupErr.Type)
		assert.Equal(t, "main", dupErr.Name)
	})

	t.Run("same name under different types is not a duplicate", func(t *testing.T) {
		g := New()
		_, err := g.AddResource(&config.Resource{Type: "aws_vpc", Name: "main"})
		require.NoError(t, err)
		_, err = g.AddResource(&config.Resource{Type: "aws_subnet", Name: "main"})
		require.NoError(t, err)
		assert.Equal(t, 2, g.Len())
	})
}

func TestAddReference(t *testing.T) {
	t.Run("links both adjacency directions", func(t *testing.T) {
		g := New()
		vpc, err := g.AddResource(&config.Resource{Type: "aws_vpc", Name: "main"})
		require.NoError(t, err)
		subnet, err := g.AddResource(&config.Resource{Type: "aws_subnet", Name: "a"})
		require.NoError(t, err)

		require.NoError(t, g.AddReference(subnet.ID, vpc.ID, "id"))

		assert.Contains(t, subnet.Deps, vpc.ID)
		assert.Contains(t, vpc.Dependents, subnet.ID)

		refs := g.ReferencesOf(subnet.ID)
		require.Len(t, refs, 1)
		assert.Equal(t, Reference{From: subnet.ID, To: vpc.ID, AttributePath: "id"}, refs[0])
	})

	t.Run("second reference to the same producer keeps one edge", func(t *testing.T) {
		g := New()
		vpc, err := g.AddResource(&config.Resource{Type: "aws_vpc", Name: "main"})
		require.NoError(t, err)
		subnet, err := g.AddResource(&config.Resource{Type: "aws_subnet", Name: "a"})
		require.NoError(t, err)

		require.NoError(t, g.AddReference(subnet.ID, vpc.ID, "id"))
		require.NoError(t, g.AddReference(subnet.ID, vpc.ID, "arn"))

		assert.Len(t, subnet.Deps, 1)
		assert.Len(t, g.ReferencesOf(subnet.ID), 2)
	})

	t.Run("unknown endpoints fail", func(t *testing.T) {
		g := New()
		_, err := g.AddResource(&config.Resource{Type: "aws_vpc", Name: "main"})
		require.NoError(t, err)

		err = g.AddReference("aws_subnet.dne", "aws_vpc.main", "id")
		var unknownErr *UnknownResourceError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "aws_subnet.dne", unknownErr.Address)

		err = g.AddReference("aws_vpc.main", "aws_subnet.dne", "id")
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "aws_subnet.dne", unknownErr.Address)
		assert.Equal(t, "aws_vpc.main", unknownErr.ReferencedBy)
	})
}

func TestResourcesIteration(t *testing.T) {
	g := New()
	for _, name := range []string{"c", "a", "b"} {
		_, err := g.AddResource(&config.Resource{Type: "aws_vpc", Name: name})
		require.NoError(t, err)
	}

	var first []string
	for node := range g.Resources() {
		first = append(first, node.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, first, "iteration follows declaration order")

	// The sequence is restartable and can be stopped early.
	var second []string
	for node := range g.Resources() {
		second = append(second, node.Name)
		if len(second) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"c", "a"}, second)
}
