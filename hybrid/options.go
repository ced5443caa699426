package hybrid

import "github.com/comalice/vectorx/internal/primitives"

// Option configures a Vector at construction.
type Option func(*options)

type options struct {
	alloc any
}

// WithAllocator sets the allocator used to construct, destroy and relocate
// elements. Its element type must match the vector's; New panics otherwise.
func WithAllocator[T any](a primitives.Allocator[T]) Option {
	if a == nil {
		panic("hybrid: allocator must not be nil")
	}
	return func(o *options) {
		o.alloc = a
	}
}

func buildAllocator[T any](opts []Option) primitives.Allocator[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.alloc == nil {
		return primitives.NewHeapAllocator[T]()
	}
	a, ok := o.alloc.(primitives.Allocator[T])
	if !ok {
		panic("hybrid: allocator element type does not match the vector's")
	}
	return a
}
