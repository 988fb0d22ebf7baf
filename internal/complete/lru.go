package complete

import "container/list"

// lru is a generic least-recently-used cache built on container/list, the
// same way the teacher's internal/semantic.LRUCache is: the map owns the
// nodes, the list only orders them, so eviction never has to reason about
// destructor ordering (SPEC_FULL.md §3/§9 — "the neighbor links never
// dictate destruction order"). Callers hold whatever lock (or none, for
// the worker-owned per-file completion caches) makes concurrent access
// safe; this type does no locking of its own.
type lru[K comparable, V any] struct {
	maxSize int
	order   *list.List
	items   map[K]*list.Element
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// newLRU creates an LRU capped at maxSize. A maxSize <= 0 means unbounded.
func newLRU[K comparable, V any](maxSize int) *lru[K, V] {
	return &lru[K, V]{
		maxSize: maxSize,
		order:   list.New(),
		items:   make(map[K]*list.Element),
	}
}

// Get returns the value for key and promotes it to the front on hit.
func (c *lru[K, V]) Get(key K) (V, bool) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Peek returns the value for key without promoting it.
func (c *lru[K, V]) Peek(key K) (V, bool) {
	if elem, ok := c.items[key]; ok {
		return elem.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put inserts or updates key's value at the front of the LRU. If this
// overflows the cache, the tail entry is evicted and returned (evicted,
// true); the caller is responsible for releasing any resource the
// evicted value owns.
func (c *lru[K, V]) Put(key K, value V) (evictedKey K, evictedValue V, evicted bool) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*lruEntry[K, V]).value = value
		return evictedKey, evictedValue, false
	}

	elem := c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
	c.items[key] = elem

	if c.maxSize > 0 && c.order.Len() > c.maxSize {
		return c.evictTail()
	}
	return evictedKey, evictedValue, false
}

// evictTail drops the least-recently-used entry.
func (c *lru[K, V]) evictTail() (key K, value V, ok bool) {
	tail := c.order.Back()
	if tail == nil {
		return key, value, false
	}
	entry := tail.Value.(*lruEntry[K, V])
	c.order.Remove(tail)
	delete(c.items, entry.key)
	return entry.key, entry.value, true
}

// Remove deletes key from the LRU if present.
func (c *lru[K, V]) Remove(key K) (value V, ok bool) {
	elem, ok := c.items[key]
	if !ok {
		return value, false
	}
	entry := elem.Value.(*lruEntry[K, V])
	c.order.Remove(elem)
	delete(c.items, key)
	return entry.value, true
}

// Len returns the current number of entries.
func (c *lru[K, V]) Len() int { return c.order.Len() }

// Keys returns keys ordered most- to least-recently-used.
func (c *lru[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*lruEntry[K, V]).key)
	}
	return keys
}

// Values returns values ordered most- to least-recently-used.
func (c *lru[K, V]) Values() []V {
	values := make([]V, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		values = append(values, e.Value.(*lruEntry[K, V]).value)
	}
	return values
}
