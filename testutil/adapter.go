package testutil

import (
	"io"

	"github.com/comalice/vectorx"
	"github.com/comalice/vectorx/bounded"
	"github.com/comalice/vectorx/fixed"
	"github.com/comalice/vectorx/hybrid"
	"github.com/comalice/vectorx/internal/primitives"
)

// Target builds one kind of vector, so the same test body can run against
// every variant.
type Target[T any] struct {
	Name string
	// New returns an empty vector that uses alloc. A nil alloc selects the
	// default. The reference target ignores alloc.
	New func(alloc primitives.Allocator[T]) vectorx.Vector[T]
}

// Reference builds the plain-slice vector the other targets are compared with.
func Reference[T any]() Target[T] {
	return Target[T]{
		Name: "slice",
		New:  func(primitives.Allocator[T]) vectorx.Vector[T] { return vectorx.NewSlice[T]() },
	}
}

// Bounded builds bounded vectors. Out-of-bounds access panics with a
// *bounded.FatalError instead of ending the test binary.
func Bounded[T any]() Target[T] {
	return Target[T]{
		Name: "bounded",
		New: func(alloc primitives.Allocator[T]) vectorx.Vector[T] {
			opts := []bounded.Option{bounded.WithExitFunc(func(int) {}), bounded.WithErrorStream(io.Discard)}
			if alloc != nil {
				opts = append(opts, bounded.WithAllocator(alloc))
			}
			return bounded.New[T](opts...)
		},
	}
}

// Fixed builds fixed vectors of the given capacity.
func Fixed[T any](capacity int) Target[T] {
	return Target[T]{
		Name: "fixed",
		New: func(alloc primitives.Allocator[T]) vectorx.Vector[T] {
			if alloc == nil {
				return fixed.New[T](capacity)
			}
			return fixed.New[T](capacity, fixed.WithAllocator(alloc))
		},
	}
}

// Hybrid builds hybrid vectors with the given inline capacity.
func Hybrid[T any](inline int) Target[T] {
	return Target[T]{
		Name: "hybrid",
		New: func(alloc primitives.Allocator[T]) vectorx.Vector[T] {
			if alloc == nil {
				return hybrid.New[T](inline)
			}
			return hybrid.New[T](inline, hybrid.WithAllocator(alloc))
		},
	}
}

// Targets returns the reference, bounded, fixed and hybrid targets.
func Targets[T any](capacity, inline int) []Target[T] {
	return []Target[T]{Reference[T](), Bounded[T](), Fixed[T](capacity), Hybrid[T](inline)}
}

var (
	_ vectorx.Vector[int] = (*vectorx.Slice[int])(nil)
	_ vectorx.Vector[int] = (*bounded.Vector[int])(nil)
	_ vectorx.Vector[int] = (*fixed.Vector[int])(nil)
	_ vectorx.Vector[int] = (*hybrid.Vector[int])(nil)
)
