// Package artifact writes deployable artifact descriptors after a
// successful apply. The descriptor shape is a fixed external contract
// consumed by the build collaborator:
//
//	[{"name": "<container>", "imageUri": "<registry uri>"}]
package artifact

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// ContainerImage is one entry of an image-definitions descriptor.
type ContainerImage struct {
	Name     string `json:"name"`
	ImageURI string `json:"imageUri"`
}

// Definitions is the full descriptor document.
type Definitions []ContainerImage

// Marshal renders the descriptor in its wire shape.
func (d Definitions) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// Write renders the descriptor and writes it to path.
func (d Definitions) Write(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal artifact descriptor: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact descriptor to %s: %w", path, err)
	}
	return nil
}

// Parse reads a descriptor from its wire shape, for consumers that need to
// verify what a build step produced.
func Parse(data []byte) (Definitions, error) {
	var defs Definitions
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse artifact descriptor: %w", err)
	}
	for i, def := range defs {
		if def.Name == "" || def.ImageURI == "" {
			return nil, fmt.Errorf("artifact descriptor entry %d is missing name or imageUri", i)
		}
	}
	return defs, nil
}
