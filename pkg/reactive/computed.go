package reactive

import "sync"

// Computed is a cached derived value. Notifications from its declared
// dependencies mark it dirty; recomputation happens lazily on the next
// Get, never eagerly inside the notification.
type Computed struct {
	mu      sync.Mutex
	compute func() any
	value   any
	dirty   bool
	unsubs  []func()
}

// NewComputed returns a Computed over fn. Any change notification from
// one of deps invalidates the cache.
func NewComputed(fn func() any, deps ...*Node) *Computed {
	c := &Computed{
		compute: fn,
		dirty:   true,
	}
	for _, dep := range deps {
		unsub := dep.Subscribe(func(string, any, any) {
			c.invalidate()
		})
		c.unsubs = append(c.unsubs, unsub)
	}
	return c
}

// Get returns the derived value, recomputing only if a dependency
// notified since the last read.
func (c *Computed) Get() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dirty {
		c.value = c.compute()
		c.dirty = false
	}
	return c.value
}

// Dirty reports whether the next Get will recompute.
func (c *Computed) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Release unsubscribes from all dependencies. The cached value stays
// readable but no longer invalidates.
func (c *Computed) Release() {
	c.mu.Lock()
	unsubs := c.unsubs
	c.unsubs = nil
	c.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}

func (c *Computed) invalidate() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}
