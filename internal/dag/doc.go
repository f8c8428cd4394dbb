// Package dag models the declared stack as a directed acyclic graph of
// typed resources. It is responsible for building the graph from the config
// model, linking explicit and implicit dependencies, rejecting structural
// defects (duplicates, dangling references, cycles) before any provider call
// is made, and computing a reproducible creation order.
package dag
