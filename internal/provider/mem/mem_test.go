package mem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/infragrid/internal/provider"
	"github.com/zclconf/go-cty/cty"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("fabricates the declared exports", func(t *testing.T) {
		p := New()
		result, err := p.Create(ctx, &provider.CreateRequest{
			Type: "aws_ecr_repository",
			Name: "app",
			Attributes: map[string]cty.Value{
				"name": cty.StringVal("flask-app"),
			},
		})
		require.NoError(t, err)

		live := result.LiveAttributes
		assert.Contains(t, live["id"].AsString(), "repo-")
		assert.Contains(t, live["arn"].AsString(), "arn:mem:")
		assert.Equal(t, "registry.mem.local/app", live["repository_url"].AsString())

		assert.True(t, p.Exists("aws_ecr_repository.app"))
		assert.Equal(t, []string{"aws_ecr_repository.app"}, p.CreateOrder())
	})

	t.Run("rejects unsupported types", func(t *testing.T) {
		p := New()
		_, err := p.Create(ctx, &provider.CreateRequest{Type: "aws_mainframe", Name: "x"})
		require.ErrorContains(t, err, "unsupported resource type")
	})

	t.Run("rejects a second create for the same address", func(t *testing.T) {
		p := New()
		req := &provider.CreateRequest{Type: "aws_vpc", Name: "main"}
		_, err := p.Create(ctx, req)
		require.NoError(t, err)
		_, err = p.Create(ctx, req)
		require.ErrorContains(t, err, "already exists")
	})

	t.Run("injected failures surface as-is", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		p := New(WithFailure("aws_vpc.main", boom))
		_, err := p.Create(ctx, &provider.CreateRequest{Type: "aws_vpc", Name: "main"})
		require.ErrorIs(t, err, boom)
		assert.False(t, p.Exists("aws_vpc.main"))
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		p := New()
		_, err := p.Create(cancelled, &provider.CreateRequest{Type: "aws_vpc", Name: "main"})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	p := New()

	_, err := p.Create(ctx, &provider.CreateRequest{Type: "aws_vpc", Name: "main"})
	require.NoError(t, err)

	require.NoError(t, p.Delete(ctx, &provider.DeleteRequest{Type: "aws_vpc", Name: "main"}))
	assert.False(t, p.Exists("aws_vpc.main"))

	err = p.Delete(ctx, &provider.DeleteRequest{Type: "aws_vpc", Name: "main"})
	require.ErrorContains(t, err, "does not exist")
}

func TestSchemas(t *testing.T) {
	p := New()
	schemas := p.Schemas()
	require.NotEmpty(t, schemas)

	byType := make(map[string]provider.ResourceSchema, len(schemas))
	for _, s := range schemas {
		byType[s.Type] = s
	}

	lb, ok := byType["aws_lb"]
	require.True(t, ok)
	assert.Contains(t, lb.Exports, "dns_name")

	repo, ok := byType["aws_ecr_repository"]
	require.True(t, ok)
	assert.Contains(t, repo.Exports, "repository_url")
}
