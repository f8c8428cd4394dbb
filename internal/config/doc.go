// Package config defines the format-agnostic stack model for the
// application, along with the Loader interface for reading stack
// declarations from various sources.
//
// The config.Stack is the single source of truth for the dag and
// executor packages. Concrete implementations of Loader, such as for
// HCL, are provided in separate packages.
package config
