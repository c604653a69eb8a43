package testutil

import (
	"sync"

	"github.com/roach88/strata/store"
)

// CountingThunk builds thunks whose results increase on every invocation,
// making fresh-evaluation (no caching) observable in tests: successive
// reads must observe successive values.
//
// Thread-safety: safe for concurrent use via internal mutex, so a single
// counter can back thunks in several trees.
type CountingThunk struct {
	mu sync.Mutex
	n  int64
}

// NewCountingThunk creates a counter starting at 0; the first invocation
// yields 1.
func NewCountingThunk() *CountingThunk {
	return &CountingThunk{}
}

// Thunk returns a store.Thunk producing the next counter value as a leaf.
func (c *CountingThunk) Thunk() store.Thunk {
	return func() store.Result {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.n++
		return store.LeafResult{Value: c.n}
	}
}

// Invocations returns how many times any thunk from this counter ran.
func (c *CountingThunk) Invocations() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
