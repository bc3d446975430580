// Package history keeps the most recent analyses in memory.
package history

import (
	"sync"

	"ai-signal-analyzer/internal/types"
)

// DefaultCapacity is the number of analyses retained when no capacity is given.
const DefaultCapacity = 100

// Ring is a fixed-capacity FIFO of analysis records. Appends beyond capacity
// evict the oldest entry. Safe for concurrent use.
type Ring struct {
	mu    sync.RWMutex
	items []types.AnalysisRecord
	head  int // index of the oldest record
	size  int
}

func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{items: make([]types.AnalysisRecord, capacity)}
}

// Append stores a copy of rec, evicting the oldest record when full.
func (r *Ring) Append(rec types.AnalysisRecord) {
	rec = rec.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.size < len(r.items) {
		r.items[(r.head+r.size)%len(r.items)] = rec
		r.size++
		return
	}
	r.items[r.head] = rec
	r.head = (r.head + 1) % len(r.items)
}

// Recent returns up to limit of the newest records, oldest first. A limit of
// zero or less returns everything.
func (r *Ring) Recent(limit int) []types.AnalysisRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.size
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]types.AnalysisRecord, 0, n)
	for i := r.size - n; i < r.size; i++ {
		out = append(out, r.items[(r.head+i)%len(r.items)].Clone())
	}
	return out
}

func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

func (r *Ring) Cap() int {
	return len(r.items)
}
