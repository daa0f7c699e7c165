// Package background provides the default execution context for parallel
// match shards: a fixed worker count and a "spawn N, join all" primitive.
//
// Scoped is structured concurrency in the small: every task spawned for a
// search completes before the search call returns, so no background work
// ever outlives the query that started it.
package background

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Executor implements fuzzy.Executor over goroutines.
type Executor struct {
	workers int
}

// New creates an executor sized to the available hardware parallelism.
func New() *Executor {
	return NewWithWorkers(runtime.NumCPU())
}

// NewWithWorkers creates an executor with an explicit worker count.
// Counts below one are clamped to one; one worker makes every scan run
// serially on the calling goroutine, which is useful in tests.
func NewWithWorkers(workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{workers: workers}
}

// WorkerCount returns the parallelism degree callers may shard to.
func (e *Executor) WorkerCount() int {
	return e.workers
}

// Scoped runs fn for every shard index in [0, n) and returns once all
// invocations have completed.
func (e *Executor) Scoped(n int, fn func(shard int)) {
	if n <= 0 {
		return
	}
	if n == 1 {
		fn(0)
		return
	}

	var g errgroup.Group
	for shard := range n {
		g.Go(func() error {
			fn(shard)
			return nil
		})
	}
	// Worker functions never return errors; Wait is only the join point.
	_ = g.Wait()
}
