package background

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWorkers(t *testing.T) {
	assert.Equal(t, 4, NewWithWorkers(4).WorkerCount())
	assert.Equal(t, 1, NewWithWorkers(0).WorkerCount(), "worker count is clamped")
	assert.Equal(t, 1, NewWithWorkers(-3).WorkerCount())
	assert.Equal(t, runtime.NumCPU(), New().WorkerCount())
}

func TestScopedRunsEveryShard(t *testing.T) {
	ex := NewWithWorkers(4)

	var seen [8]atomic.Bool
	ex.Scoped(len(seen), func(shard int) {
		seen[shard].Store(true)
	})

	// Scoped returns only after every shard has run.
	for i := range seen {
		assert.True(t, seen[i].Load(), "shard %d did not run", i)
	}
}

func TestScopedSingleShardRunsInline(t *testing.T) {
	ex := NewWithWorkers(4)

	var calls atomic.Int32
	ex.Scoped(1, func(shard int) {
		assert.Zero(t, shard)
		calls.Add(1)
	})
	assert.Equal(t, int32(1), calls.Load())
}

func TestScopedZeroShards(t *testing.T) {
	ex := NewWithWorkers(2)
	ex.Scoped(0, func(int) {
		t.Fatal("no shard should run")
	})
}
