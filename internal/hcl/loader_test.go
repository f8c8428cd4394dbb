package hcl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/infragrid/internal/ctxlog"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeStackFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("translates all block kinds into the model", func(t *testing.T) {
		dir := t.TempDir()
		writeStackFile(t, dir, "stack.hcl", `
source "github" {
  owner      = "vk"
  repository = "flask-app"
  branch     = "main"
  token      = "ghp_secret"
}

resource "aws_vpc" "main" {
  cidr_block = "10.0.0.0/16"
}

resource "aws_subnet" "a" {
  vpc_id     = resource.aws_vpc.main.id
  cidr_block = "10.0.1.0/24"

  depends_on = ["aws_vpc.main"]
}

output "vpc_id" {
  value       = resource.aws_vpc.main.id
  description = "The network identifier"
  sensitive   = true
}

artifact "web" {
  container_name = "flask-app"
  image_uri      = "${resource.aws_vpc.main.id}:latest"
  path           = "imagedefinitions.json"
}
`)

		stack, err := NewLoader().Load(testContext(t), dir)
		require.NoError(t, err)

		require.Len(t, stack.Resources, 2)
		vpc := stack.Resources[0]
		assert.Equal(t, "aws_vpc", vpc.Type)
		assert.Equal(t, "main", vpc.Name)
		assert.Equal(t, 0, vpc.DeclOrder)
		assert.Contains(t, vpc.Arguments, "cidr_block")

		subnet := stack.Resources[1]
		assert.Equal(t, 1, subnet.DeclOrder)
		assert.Equal(t, []string{"aws_vpc.main"}, subnet.DependsOn)
		// depends_on is a meta argument, not a provider attribute.
		assert.NotContains(t, subnet.Arguments, "depends_on")

		require.Len(t, stack.Outputs, 1)
		assert.Equal(t, "vpc_id", stack.Outputs[0].Name)
		assert.Equal(t, "The network identifier", stack.Outputs[0].Description)
		assert.True(t, stack.Outputs[0].Sensitive)

		require.Len(t, stack.Artifacts, 1)
		assert.Equal(t, "web", stack.Artifacts[0].Name)
		assert.Equal(t, "imagedefinitions.json", stack.Artifacts[0].Path)

		require.Len(t, stack.Sources, 1)
		src := stack.Sources[0]
		assert.Equal(t, "github", src.Label)
		assert.Equal(t, "vk", src.Owner)
		assert.Equal(t, "ghp_secret", src.Token.Reveal())
		assert.Equal(t, "[redacted]", src.Token.String())
	})

	t.Run("declaration order spans multiple files", func(t *testing.T) {
		dir := t.TempDir()
		writeStackFile(t, dir, "a.hcl", `
resource "aws_vpc" "first" {}
resource "aws_vpc" "second" {}
`)
		writeStackFile(t, dir, "b.hcl", `
resource "aws_vpc" "third" {}
`)

		stack, err := NewLoader().Load(testContext(t), dir)
		require.NoError(t, err)

		require.Len(t, stack.Resources, 3)
		for i, name := range []string{"first", "second", "third"} {
			assert.Equal(t, name, stack.Resources[i].Name)
			assert.Equal(t, i, stack.Resources[i].DeclOrder)
		}
	})

	t.Run("a single file path loads directly", func(t *testing.T) {
		dir := t.TempDir()
		path := writeStackFile(t, dir, "stack.hcl", `resource "aws_vpc" "main" {}`)

		stack, err := NewLoader().Load(testContext(t), path)
		require.NoError(t, err)
		require.Len(t, stack.Resources, 1)
	})

	t.Run("no files yields an empty stack", func(t *testing.T) {
		stack, err := NewLoader().Load(testContext(t), t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, stack.Resources)
	})

	t.Run("malformed HCL is rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeStackFile(t, dir, "broken.hcl", `resource "aws_vpc" {`)

		_, err := NewLoader().Load(testContext(t), dir)
		require.Error(t, err)
	})

	t.Run("unknown top level blocks fall into the remainder", func(t *testing.T) {
		dir := t.TempDir()
		writeStackFile(t, dir, "stack.hcl", `
widget "nope" {
  value = 1
}

resource "aws_vpc" "main" {}
`)

		stack, err := NewLoader().Load(testContext(t), dir)
		require.NoError(t, err)
		require.Len(t, stack.Resources, 1)
	})
}
