package executor

import (
	"fmt"
	"sync"
	"time"

	"github.com/vk/infragrid/internal/dag"
	"github.com/vk/infragrid/internal/provider"
)

// Executor reconciles a resource graph against provider adapters.
type Executor struct {
	graph      *dag.Graph
	registry   *provider.Registry
	numWorkers int
	// callTimeout bounds each individual provider call. Zero means the
	// call inherits the run context's deadline, if any.
	callTimeout time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithCallTimeout bounds each provider call with its own deadline. An
// expired call is reported as that resource's failure; retry policy is
// left to the adapter.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Executor) { e.callTimeout = d }
}

// New creates an executor over a built graph.
func New(graph *dag.Graph, numWorkers int, registry *provider.Registry, opts ...Option) *Executor {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	e := &Executor{
		graph:      graph,
		registry:   registry,
		numWorkers: numWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func errUnregisteredType(resourceType string) error {
	return fmt.Errorf("no provider registered for resource type %q", resourceType)
}

// run holds the mutable bookkeeping of one apply walk. Workers share it
// behind its mutex; nothing in it outlives the run.
type run struct {
	wg sync.WaitGroup

	mu      sync.Mutex
	skipped map[string]bool
	result  Result
}

func (r *run) recordCreated(addr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Created = append(r.result.Created, addr)
}

func (r *run) recordFailed(addr string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Failed = append(r.result.Failed, ResourceFailure{Address: addr, Err: err})
}

// recordSkipped marks a node skipped at most once, regardless of how many
// failed ancestors reach it. Reports whether this call was the first.
func (r *run) recordSkipped(addr, failedDep string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.skipped[addr] {
		return false
	}
	r.skipped[addr] = true
	r.result.Skipped = append(r.result.Skipped, SkippedResource{Address: addr, FailedDependency: failedDep})
	return true
}
