// Package hcl implements the config.Loader interface for HCL stack files.
// It discovers .hcl files, parses them with hclparse, decodes them against
// the schema structs, and translates the result into the format-agnostic
// config model.
package hcl
