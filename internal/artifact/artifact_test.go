package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsMarshal(t *testing.T) {
	defs := Definitions{
		{Name: "flask-app", ImageURI: "123.dkr.ecr.us-east-1.amazonaws.com/flask-app:latest"},
	}

	data, err := defs.Marshal()
	require.NoError(t, err)

	// The key casing is a fixed contract with the build collaborator.
	assert.JSONEq(t,
		`[{"name":"flask-app","imageUri":"123.dkr.ecr.us-east-1.amazonaws.com/flask-app:latest"}]`,
		string(data),
	)
}

func TestDefinitionsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imagedefinitions.json")
	defs := Definitions{{Name: "web", ImageURI: "registry.local/web:1"}}

	require.NoError(t, defs.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, defs, parsed)
}

func TestParse(t *testing.T) {
	t.Run("round trips a valid descriptor", func(t *testing.T) {
		parsed, err := Parse([]byte(`[{"name":"a","imageUri":"b"}]`))
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		assert.Equal(t, "a", parsed[0].Name)
		assert.Equal(t, "b", parsed[0].ImageURI)
	})

	t.Run("rejects entries missing fields", func(t *testing.T) {
		_, err := Parse([]byte(`[{"name":"a"}]`))
		require.ErrorContains(t, err, "missing name or imageUri")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := Parse([]byte(`{`))
		require.Error(t, err)
	})
}
