package primitives

// Cloner is implemented by element types whose copies must not share state
// with their source (owned buffers, handles). Copy uses it whenever a vector
// copy-constructs a slot.
type Cloner[T any] interface {
	Clone() T
}

// Releaser is implemented by element types with an observable end of life.
// HeapAllocator.Destroy calls Release exactly once per destroyed slot.
type Releaser interface {
	Release()
}

// Copy returns an independent copy of v: v.Clone() when T implements Cloner,
// otherwise v itself.
func Copy[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

func release[T any](slot *T) {
	if r, ok := any(*slot).(Releaser); ok {
		r.Release()
		return
	}
	if r, ok := any(slot).(Releaser); ok {
		r.Release()
	}
}
