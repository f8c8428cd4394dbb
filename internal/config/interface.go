package config

import (
	"context"
)

// Loader is the interface for a format-specific stack loader.
type Loader interface {
	// Load reads stack declarations from the given paths and translates
	// them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Stack, error)
}
