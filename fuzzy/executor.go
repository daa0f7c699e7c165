package fuzzy

// Executor is the execution context callers supply to the parallel
// matchers. WorkerCount bounds the shard count; Scoped runs fn once per
// shard index in [0, n) and returns only after every invocation has
// completed. No work may outlive the Scoped call.
//
// The background package provides the default implementation.
type Executor interface {
	WorkerCount() int
	Scoped(n int, fn func(shard int))
}
