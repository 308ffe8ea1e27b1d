package store

import "sync"

// Cache is a side table of values derived from nodes. An entry is dropped
// whenever any field of its node changes, and the whole table is dropped
// when the root pointer changes.
type Cache[T any] struct {
	mu          sync.Mutex
	entries     map[string]T
	generation  uint64 // bumped by every invalidation
	unsubscribe func()
}

// NewCache returns a cache invalidated by changes to s.
func NewCache[T any](s *Store) *Cache[T] {
	c := &Cache[T]{entries: make(map[string]T)}
	c.unsubscribe = s.Subscribe(c.invalidate)
	return c
}

func (c *Cache[T]) invalidate(changes []Change) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	for _, ch := range changes {
		if ch.ID == "" {
			clear(c.entries)
			return
		}
		delete(c.entries, ch.ID)
	}
}

// Get returns the cached value for id, computing and storing it on a miss.
// Errors are not cached, and neither is a value computed while the store
// changed, since it may have been read before the change.
func (c *Cache[T]) Get(id string, compute func() (T, error)) (T, error) {
	c.mu.Lock()
	v, ok := c.entries[id]
	generation := c.generation
	c.mu.Unlock()
	if ok {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		return v, err
	}
	c.mu.Lock()
	if c.generation == generation {
		c.entries[id] = v
	}
	c.mu.Unlock()
	return v, nil
}

// Invalidate drops the entry for id.
func (c *Cache[T]) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	delete(c.entries, id)
}

// Len returns the number of cached entries.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops listening for changes.
func (c *Cache[T]) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}
