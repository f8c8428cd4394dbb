package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecret(t *testing.T) {
	secret := Secret("ghp_supersecrettoken")

	t.Run("reveal returns the raw credential", func(t *testing.T) {
		assert.Equal(t, "ghp_supersecrettoken", secret.Reveal())
	})

	t.Run("every formatting verb redacts", func(t *testing.T) {
		for _, rendered := range []string{
			fmt.Sprintf("%s", secret),
			fmt.Sprintf("%v", secret),
			fmt.Sprintf("%#v", secret),
			fmt.Sprint(secret),
		} {
			assert.Equal(t, "[redacted]", rendered)
			assert.NotContains(t, rendered, "supersecret")
		}
	})

	t.Run("structured logging redacts", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		logger.Info("source configured", "token", secret)

		assert.Contains(t, buf.String(), "[redacted]")
		assert.NotContains(t, buf.String(), "supersecret")
	})

	t.Run("text marshalling redacts", func(t *testing.T) {
		data, err := secret.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, "[redacted]", string(data))
	})
}
