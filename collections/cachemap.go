package collections

import (
	"container/list"
	"iter"

	"github.com/dendrascience/utilkit/validate"
)

// CacheMap is a map bounded to a fixed number of entries. When full, inserting a
// new key evicts the eldest entry first. By default age is insertion order and
// updating an existing key does not refresh it; WithAccessOrder makes Get and Put
// refresh keys, which turns the map into an LRU cache.
//
// CacheMap is not safe for concurrent use.
type CacheMap[K comparable, V any] struct {
	capacity    int
	items       map[K]*list.Element
	order       *list.List // front = eldest
	accessOrder bool
	onEvict     func(K, V)
}

type cacheEntry[K comparable, V any] struct {
	key   K
	value V
}

// CacheOption configures a CacheMap.
type CacheOption[K comparable, V any] func(*CacheMap[K, V])

// WithAccessOrder refreshes an entry's age on Get and Put.
func WithAccessOrder[K comparable, V any]() CacheOption[K, V] {
	return func(c *CacheMap[K, V]) {
		c.accessOrder = true
	}
}

// WithEvictionCallback registers fn to be called for each evicted entry.
// Explicit Remove and Clear do not trigger it.
func WithEvictionCallback[K comparable, V any](fn func(K, V)) CacheOption[K, V] {
	return func(c *CacheMap[K, V]) {
		c.onEvict = fn
	}
}

// NewCacheMap creates a CacheMap holding at most capacity entries.
// It panics if capacity is not positive.
func NewCacheMap[K comparable, V any](capacity int, opts ...CacheOption[K, V]) *CacheMap[K, V] {
	validate.Must(validate.Positive("capacity", capacity))
	c := &CacheMap[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for k. In access order mode it refreshes k.
func (c *CacheMap[K, V]) Get(k K) (V, bool) {
	el, ok := c.items[k]
	if !ok {
		var zero V
		return zero, false
	}
	if c.accessOrder {
		c.order.MoveToBack(el)
	}
	return el.Value.(*cacheEntry[K, V]).value, true
}

// Peek returns the value for k without refreshing it.
func (c *CacheMap[K, V]) Peek(k K) (V, bool) {
	el, ok := c.items[k]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(*cacheEntry[K, V]).value, true
}

// Contains reports whether k is present without refreshing it.
func (c *CacheMap[K, V]) Contains(k K) bool {
	_, ok := c.items[k]
	return ok
}

// Put stores v under k and reports whether an entry was evicted to make room.
func (c *CacheMap[K, V]) Put(k K, v V) (evicted bool) {
	if el, ok := c.items[k]; ok {
		el.Value.(*cacheEntry[K, V]).value = v
		if c.accessOrder {
			c.order.MoveToBack(el)
		}
		return false
	}
	if c.order.Len() >= c.capacity {
		c.evictEldest()
		evicted = true
	}
	c.items[k] = c.order.PushBack(&cacheEntry[K, V]{key: k, value: v})
	return evicted
}

// Remove deletes k and returns its value.
func (c *CacheMap[K, V]) Remove(k K) (V, bool) {
	el, ok := c.items[k]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.Remove(el)
	delete(c.items, k)
	return el.Value.(*cacheEntry[K, V]).value, true
}

// Len returns the number of entries.
func (c *CacheMap[K, V]) Len() int {
	return c.order.Len()
}

// Cap returns the maximum number of entries.
func (c *CacheMap[K, V]) Cap() int {
	return c.capacity
}

// Resize changes the capacity, evicting eldest entries until the map fits.
// It panics if capacity is not positive.
func (c *CacheMap[K, V]) Resize(capacity int) {
	validate.Must(validate.Positive("capacity", capacity))
	c.capacity = capacity
	for c.order.Len() > c.capacity {
		c.evictEldest()
	}
}

// Eldest returns the entry that would be evicted next.
func (c *CacheMap[K, V]) Eldest() (K, V, bool) {
	el := c.order.Front()
	if el == nil {
		var k K
		var v V
		return k, v, false
	}
	e := el.Value.(*cacheEntry[K, V])
	return e.key, e.value, true
}

// Keys returns all keys, eldest first.
func (c *CacheMap[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*cacheEntry[K, V]).key)
	}
	return keys
}

// All iterates over entries eldest first. The map must not be modified
// during iteration.
func (c *CacheMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for el := c.order.Front(); el != nil; el = el.Next() {
			e := el.Value.(*cacheEntry[K, V])
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Clear removes all entries.
func (c *CacheMap[K, V]) Clear() {
	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
}

func (c *CacheMap[K, V]) evictEldest() {
	el := c.order.Front()
	if el == nil {
		return
	}
	e := el.Value.(*cacheEntry[K, V])
	c.order.Remove(el)
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}
