// Package executor walks the resource graph in dependency order and
// reconciles each node against its provider adapter. Independent branches
// of the graph run on a bounded pool of concurrent workers; a failure is
// isolated to the failing resource's dependent subtree and never aborts
// unrelated branches.
package executor
