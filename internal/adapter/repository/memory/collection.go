// Package memory is the process-local record store. Nothing survives a restart.
package memory

import (
	"sync"

	"support-desk/internal/apperrors"
	"support-desk/pkg/id"
)

// Accessors tells a Collection how to read and write the identity of E.
type Accessors[E any] struct {
	ID    func(E) string
	SetID func(*E, string)
	// Key returns the natural key; nil means the collection has none.
	Key func(E) string
	// Clone deep-copies E; nil means plain assignment is enough.
	Clone func(E) E
}

// Collection is a mutex-guarded map of E keyed by a generated id. It keeps
// insertion order and, when Accessors.Key is set, a unique natural-key index.
type Collection[E any] struct {
	mu    sync.RWMutex
	acc   Accessors[E]
	items map[string]E
	order []string
	byKey map[string]string
}

func NewCollection[E any](acc Accessors[E]) *Collection[E] {
	return &Collection[E]{
		acc:   acc,
		items: make(map[string]E),
		byKey: make(map[string]string),
	}
}

func (c *Collection[E]) clone(e E) E {
	if c.acc.Clone == nil {
		return e
	}
	return c.acc.Clone(e)
}

// Create stores a copy of e under a fresh id and returns the stored value.
func (c *Collection[E]) Create(e E) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var key string
	if c.acc.Key != nil {
		key = c.acc.Key(e)
		if _, taken := c.byKey[key]; taken {
			var zero E
			return zero, apperrors.ErrDuplicate
		}
	}

	stored := c.clone(e)
	newID := id.New()
	c.acc.SetID(&stored, newID)
	c.items[newID] = stored
	c.order = append(c.order, newID)
	if c.acc.Key != nil {
		c.byKey[key] = newID
	}
	return c.clone(stored), nil
}

func (c *Collection[E]) Get(id string) (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[id]
	if !ok {
		return e, false
	}
	return c.clone(e), true
}

// GetByKey resolves a natural key through the index.
func (c *Collection[E]) GetByKey(key string) (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var zero E
	id, ok := c.byKey[key]
	if !ok {
		return zero, false
	}
	return c.clone(c.items[id]), true
}

func (c *Collection[E]) First() (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.order) == 0 {
		var zero E
		return zero, false
	}
	return c.clone(c.items[c.order[0]]), true
}

func (c *Collection[E]) All() []E {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]E, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(c.items[id]))
	}
	return out
}

func (c *Collection[E]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Update applies mutate to the stored element under the write lock.
// The id is restored after mutate; mutate must not change the natural key.
func (c *Collection[E]) Update(id string, mutate func(*E)) (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.items[id]
	if !ok {
		var zero E
		return zero, false
	}
	next := c.clone(cur)
	mutate(&next)
	c.acc.SetID(&next, id)
	c.items[id] = c.clone(next)
	return c.clone(next), true
}

// Reset drops every element.
func (c *Collection[E]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]E)
	c.byKey = make(map[string]string)
	c.order = nil
}
