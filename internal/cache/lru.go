// Package cache provides a bounded in-memory cache with LRU eviction and
// per-entry TTL expiration. It backs both the suggestion cache and the
// contextual-insight cache.
package cache

import (
	"container/list"
	"errors"
	"sync"
	"time"
)

// ErrInvalidCapacity is returned when a cache is constructed with a
// non-positive capacity.
var ErrInvalidCapacity = errors.New("cache: capacity must be positive")

// ErrInvalidTTL is returned when a cache is constructed with a negative TTL.
var ErrInvalidTTL = errors.New("cache: ttl must not be negative")

// LRU is a fixed-capacity cache with least-recently-used eviction and
// time-based expiration. A TTL of zero disables expiration.
// It is safe for concurrent use.
type LRU[K comparable, V any] struct {
	items    map[K]*list.Element
	order    *list.List
	capacity int
	ttl      time.Duration
	now      func() time.Time
	mu       sync.Mutex
}

type lruEntry[K comparable, V any] struct {
	key      K
	val      V
	storedAt time.Time
}

// NewLRU creates a cache holding at most capacity entries, each valid for
// ttl after insertion. Capacity must be positive; ttl must not be negative.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration) (*LRU[K, V], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if ttl < 0 {
		return nil, ErrInvalidTTL
	}
	return &LRU[K, V]{
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// SetClock replaces the cache's time source. Tests use this to control
// expiration deterministically.
func (l *LRU[K, V]) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Get retrieves a value and marks it as recently used. An entry past its TTL
// is treated as a miss and removed.
func (l *LRU[K, V]) Get(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var zero V
	elem, ok := l.items[key]
	if !ok {
		return zero, false
	}
	entry := elem.Value.(*lruEntry[K, V])
	if l.expired(entry) {
		l.removeElement(elem)
		return zero, false
	}
	l.order.MoveToFront(elem)
	return entry.val, true
}

// Put adds or updates a value. Updating resets the entry's insertion time.
// When the cache is full the least recently used entry is evicted; ties on
// recency cannot occur because the access order list is strict.
func (l *LRU[K, V]) Put(key K, val V) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if elem, ok := l.items[key]; ok {
		entry := elem.Value.(*lruEntry[K, V])
		entry.val = val
		entry.storedAt = l.now()
		l.order.MoveToFront(elem)
		return
	}

	for l.order.Len() >= l.capacity {
		l.evictOldest()
	}

	elem := l.order.PushFront(&lruEntry[K, V]{key: key, val: val, storedAt: l.now()})
	l.items[key] = elem
}

// Delete removes an entry. It reports whether the entry was present.
func (l *LRU[K, V]) Delete(key K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if elem, ok := l.items[key]; ok {
		l.removeElement(elem)
		return true
	}
	return false
}

// Purge removes all expired entries and returns the number removed.
// Callers may invoke it periodically; Get also lazily removes expired
// entries it encounters.
func (l *LRU[K, V]) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var toRemove []*list.Element
	for e := l.order.Front(); e != nil; e = e.Next() {
		if l.expired(e.Value.(*lruEntry[K, V])) {
			toRemove = append(toRemove, e)
		}
	}
	for _, e := range toRemove {
		l.removeElement(e)
	}
	return len(toRemove)
}

// Len returns the number of entries currently held, including entries that
// have expired but not yet been purged.
func (l *LRU[K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.Len()
}

// Clear removes all entries.
func (l *LRU[K, V]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = make(map[K]*list.Element, l.capacity)
	l.order.Init()
}

func (l *LRU[K, V]) expired(entry *lruEntry[K, V]) bool {
	if l.ttl == 0 {
		return false
	}
	return l.now().Sub(entry.storedAt) >= l.ttl
}

func (l *LRU[K, V]) evictOldest() {
	back := l.order.Back()
	if back == nil {
		return
	}
	l.removeElement(back)
}

func (l *LRU[K, V]) removeElement(elem *list.Element) {
	entry := elem.Value.(*lruEntry[K, V])
	l.order.Remove(elem)
	delete(l.items, entry.key)
}
