// Package testutil provides allocators, elements and vector adapters that make
// element lifetimes observable in tests.
package testutil

import (
	"sync"

	"github.com/comalice/vectorx/internal/primitives"
)

// AllocStats is a snapshot of a TrackingAllocator's counters.
type AllocStats struct {
	Allocations   int
	Deallocations int
	Constructs    int
	Destroys      int
	Relocations   int
	// SlotsInUse is the total length of buffers allocated and not yet
	// deallocated.
	SlotsInUse int
}

// LiveElements is Constructs minus Destroys.
func (s AllocStats) LiveElements() int { return s.Constructs - s.Destroys }

// TrackingAllocator wraps HeapAllocator and counts every call. A positive Limit
// caps MaxSize.
type TrackingAllocator[T any] struct {
	Limit int

	mu    sync.Mutex
	heap  primitives.HeapAllocator[T]
	stats AllocStats
}

// NewTrackingAllocator returns a TrackingAllocator with no size limit.
func NewTrackingAllocator[T any]() *TrackingAllocator[T] {
	return &TrackingAllocator[T]{}
}

func (a *TrackingAllocator[T]) Allocate(n int) []T {
	a.mu.Lock()
	a.stats.Allocations++
	a.stats.SlotsInUse += n
	a.mu.Unlock()
	return a.heap.Allocate(n)
}

func (a *TrackingAllocator[T]) Deallocate(buf []T) {
	a.mu.Lock()
	a.stats.Deallocations++
	a.stats.SlotsInUse -= len(buf)
	a.mu.Unlock()
	a.heap.Deallocate(buf)
}

func (a *TrackingAllocator[T]) Construct(slot *T, value T) {
	a.count(&a.stats.Constructs)
	a.heap.Construct(slot, value)
}

func (a *TrackingAllocator[T]) Destroy(slot *T) {
	a.count(&a.stats.Destroys)
	a.heap.Destroy(slot)
}

func (a *TrackingAllocator[T]) Relocate(dst, src *T) {
	a.count(&a.stats.Relocations)
	a.heap.Relocate(dst, src)
}

func (a *TrackingAllocator[T]) MaxSize() int {
	if a.Limit > 0 {
		return a.Limit
	}
	return a.heap.MaxSize()
}

// Stats returns the current counters.
func (a *TrackingAllocator[T]) Stats() AllocStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

func (a *TrackingAllocator[T]) count(c *int) {
	a.mu.Lock()
	*c++
	a.mu.Unlock()
}
