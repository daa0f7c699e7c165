package fuzzy

import (
	"sync"

	"github.com/dshills/fuzzyfind/scoring"
)

// MatcherPool amortizes scoring engine construction across searches. It is
// owned by the application's search subsystem and passed to every matching
// call; the only shared mutable state in this package.
//
// The mutex guards nothing but the free list push/pop. All scanning happens
// outside the lock on an exclusively checked-out engine, and a checked-out
// engine is owned by exactly one shard until released. Handles grow to a
// high-water mark and live until the pool is garbage.
type MatcherPool struct {
	mu   sync.Mutex
	idle []*scoring.Matcher
}

// NewMatcherPool creates an empty pool. Engines are constructed lazily on
// first acquisition.
func NewMatcherPool() *MatcherPool {
	return &MatcherPool{}
}

// Acquire checks out one engine, constructing it if the pool is empty, and
// rebinds it to cfg. Every Acquire must be paired with exactly one Release
// on all exit paths; callers use defer immediately after acquiring.
func (p *MatcherPool) Acquire(cfg scoring.Config) *scoring.Matcher {
	p.mu.Lock()
	var m *scoring.Matcher
	if n := len(p.idle); n > 0 {
		m = p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
	}
	p.mu.Unlock()

	if m == nil {
		return scoring.New(cfg)
	}
	m.SetConfig(cfg)
	return m
}

// Release returns an engine to the pool.
func (p *MatcherPool) Release(m *scoring.Matcher) {
	if m == nil {
		return
	}
	p.mu.Lock()
	p.idle = append(p.idle, m)
	p.mu.Unlock()
}

// AcquireN checks out n engines, constructing new ones to cover any pool
// deficit, all rebound to cfg. There is no guarantee about which physical
// instances are returned.
func (p *MatcherPool) AcquireN(n int, cfg scoring.Config) []*scoring.Matcher {
	if n <= 0 {
		return nil
	}

	out := make([]*scoring.Matcher, 0, n)
	p.mu.Lock()
	for len(out) < n && len(p.idle) > 0 {
		last := len(p.idle) - 1
		out = append(out, p.idle[last])
		p.idle[last] = nil
		p.idle = p.idle[:last]
	}
	p.mu.Unlock()

	for _, m := range out {
		m.SetConfig(cfg)
	}
	for len(out) < n {
		out = append(out, scoring.New(cfg))
	}
	return out
}

// ReleaseN bulk-returns engines to the pool.
func (p *MatcherPool) ReleaseN(matchers []*scoring.Matcher) {
	p.mu.Lock()
	for _, m := range matchers {
		if m != nil {
			p.idle = append(p.idle, m)
		}
	}
	p.mu.Unlock()
}

// Idle reports how many engines are currently pooled.
func (p *MatcherPool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}
