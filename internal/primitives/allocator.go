package primitives

import (
	"math"
	"reflect"
)

// Allocator owns the policy for obtaining and releasing raw slot buffers and
// for building and tearing down elements inside those slots.
//
// A vector holds exactly one Allocator for its lifetime. Clones receive a copy
// of the interface value; moves transfer it.
type Allocator[T any] interface {
	// Allocate returns a buffer of exactly n empty slots.
	Allocate(n int) []T
	// Deallocate releases a buffer previously returned by Allocate. Every slot
	// must already be empty.
	Deallocate(buf []T)
	// Construct makes the empty slot live, holding value.
	Construct(slot *T, value T)
	// Destroy ends the lifetime of a live slot, leaving it empty.
	Destroy(slot *T)
	// Relocate moves the live value in src into the empty slot dst. Afterwards
	// dst is live and src is empty.
	Relocate(dst, src *T)
	// MaxSize is the largest buffer length Allocate can honour.
	MaxSize() int
}

// HeapAllocator is the default Allocator. Buffers come from make and are left
// to the garbage collector once cleared.
type HeapAllocator[T any] struct{}

// NewHeapAllocator returns the default Allocator for T.
func NewHeapAllocator[T any]() Allocator[T] {
	return HeapAllocator[T]{}
}

func (HeapAllocator[T]) Allocate(n int) []T {
	return make([]T, n)
}

func (HeapAllocator[T]) Deallocate(buf []T) {
	clear(buf)
}

func (HeapAllocator[T]) Construct(slot *T, value T) {
	*slot = value
}

// Destroy calls Release when T implements Releaser, then zeroes the slot so the
// collector can reclaim anything it referenced.
func (HeapAllocator[T]) Destroy(slot *T) {
	release(slot)
	var zero T
	*slot = zero
}

func (HeapAllocator[T]) Relocate(dst, src *T) {
	*dst = *src
	var zero T
	*src = zero
}

func (HeapAllocator[T]) MaxSize() int {
	return IndexLimit[T]()
}

// IndexLimit is the largest element count of T whose byte size does not
// overflow an int.
func IndexLimit[T any]() int {
	size := reflect.TypeFor[T]().Size()
	if size == 0 {
		return math.MaxInt
	}
	return int(uint64(math.MaxInt) / uint64(size))
}
