package testutil

import (
	"fmt"
	"sync"
)

// Registry hands out Tracked elements and remembers which are still alive.
// Every Tracked value, including clones, must be released exactly once.
type Registry struct {
	mu       sync.Mutex
	nextID   int
	live     map[int]int
	created  int
	released int
	doubles  []int
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{live: make(map[int]int)}
}

// Tracked is an element whose copies and releases are recorded in a Registry.
// The zero Tracked is untracked.
type Tracked struct {
	ID    int
	Value int
	reg   *Registry
}

// New returns a live Tracked holding value.
func (r *Registry) New(value int) Tracked {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.created++
	r.live[r.nextID] = value
	return Tracked{ID: r.nextID, Value: value, reg: r}
}

// Clone registers a new element with the same value.
func (t Tracked) Clone() Tracked {
	if t.reg == nil {
		return t
	}
	return t.reg.New(t.Value)
}

// Release unregisters t. Releasing an element twice is recorded, not ignored.
func (t Tracked) Release() {
	if t.reg == nil {
		return
	}
	r := t.reg
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.live[t.ID]; !ok {
		r.doubles = append(r.doubles, t.ID)
		return
	}
	delete(r.live, t.ID)
	r.released++
}

func (t Tracked) String() string { return fmt.Sprint(t.Value) }

// Live returns the number of elements created and not yet released.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Created returns the number of elements ever created, clones included.
func (r *Registry) Created() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

// Released returns the number of successful releases.
func (r *Registry) Released() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}

// DoubleReleases returns the IDs released more than once.
func (r *Registry) DoubleReleases() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.doubles...)
}

// Values returns the values of tracked elements in order.
func Values(ts []Tracked) []int {
	out := make([]int, len(ts))
	for i, t := range ts {
		out[i] = t.Value
	}
	return out
}
