// Package interp resolves attribute expressions to concrete values. It
// assembles an HCL evaluation context from the live values published by
// already-created resources, verifies that every reference points at a
// value that actually exists, and evaluates expressions against that
// context. Resolution is structural: lists, maps and templates containing
// further references all reduce through the same evaluation.
package interp
