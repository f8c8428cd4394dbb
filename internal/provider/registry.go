package provider

import (
	"fmt"
	"log/slog"
	"sort"
)

// Registry maps resource types to the adapter that manages them, together
// with the adapter's declared schema for that type.
type Registry struct {
	schemas   map[string]ResourceSchema
	providers map[string]Provider
}

// NewRegistry creates and initializes an empty Registry instance.
func NewRegistry() *Registry {
	return &Registry{
		schemas:   make(map[string]ResourceSchema),
		providers: make(map[string]Provider),
	}
}

// Register adds every resource type an adapter manages to the registry.
// Registering the same resource type twice is a programmer error.
func (r *Registry) Register(p Provider) {
	for _, s := range p.Schemas() {
		if _, exists := r.schemas[s.Type]; exists {
			panic(fmt.Sprintf("resource type '%s' already registered", s.Type))
		}
		slog.Debug("Registering resource type.", "type", s.Type, "provider", p.Name())
		r.schemas[s.Type] = s
		r.providers[s.Type] = p
	}
}

// Schema returns the declared schema for a resource type.
func (r *Registry) Schema(resourceType string) (ResourceSchema, bool) {
	s, ok := r.schemas[resourceType]
	return s, ok
}

// ProviderFor returns the adapter managing a resource type.
func (r *Registry) ProviderFor(resourceType string) (Provider, bool) {
	p, ok := r.providers[resourceType]
	return p, ok
}

// Types returns all registered resource types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.schemas))
	for t := range r.schemas {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
