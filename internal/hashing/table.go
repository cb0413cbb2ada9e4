package hashing

import (
	"sync"

	"github.com/lgbarn/chaichess-go/internal/chess"
)

// entry is a stored value with the exact state and tag it belongs to.
// Hash collisions are resolved by comparing both.
type entry[V any] struct {
	state chess.GameState
	tag   string
	value V
}

// Table maps game states to values. Entries are looked up by Zobrist hash
// and confirmed by exact state comparison, so a hit is never a collision.
// It is safe for concurrent use.
type Table[V any] struct {
	mu          sync.RWMutex
	entries     map[uint64][]entry[V]
	size        int
	maxCapacity int
	hits        int
	misses      int
}

// NewTable creates a table. maxCapacity of 0 means unlimited capacity.
func NewTable[V any](maxCapacity int) *Table[V] {
	return &Table[V]{
		entries:     make(map[uint64][]entry[V]),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the value stored for state under tag.
func (t *Table[V]) Lookup(state chess.GameState, tag string) (V, bool) {
	h := Hash(state)

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries[h] {
		if e.tag == tag && e.state == state {
			t.hits++
			return e.value, true
		}
	}
	t.misses++
	var zero V
	return zero, false
}

// Store records value for state under tag, replacing an earlier value.
// Once the table is full new states are dropped.
func (t *Table[V]) Store(state chess.GameState, tag string, value V) {
	h := Hash(state)

	t.mu.Lock()
	defer t.mu.Unlock()
	bucket := t.entries[h]
	for i := range bucket {
		if bucket[i].tag == tag && bucket[i].state == state {
			bucket[i].value = value
			return
		}
	}
	if t.maxCapacity > 0 && t.size >= t.maxCapacity {
		return
	}
	t.entries[h] = append(bucket, entry[V]{state: state, tag: tag, value: value})
	t.size++
}

// Len returns the number of stored entries.
func (t *Table[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// IsFull returns true if the table has reached its capacity limit.
// Always returns false for unlimited capacity (maxCapacity = 0).
func (t *Table[V]) IsFull() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.maxCapacity > 0 && t.size >= t.maxCapacity
}

// Stats returns the number of lookups that hit and missed.
func (t *Table[V]) Stats() (hits, misses int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hits, t.misses
}
