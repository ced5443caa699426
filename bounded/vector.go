package bounded

import (
	"iter"
	"slices"

	"github.com/comalice/vectorx/internal/diag"
	"github.com/comalice/vectorx/internal/primitives"
)

const name = "bounded"

type (
	// Location identifies a call site.
	Location = diag.Location
	// Provenance is the recorded construction and size-change history.
	Provenance = diag.Provenance
	// SizeChange is one recorded size transition.
	SizeChange = diag.SizeChange
	// FatalError describes an out-of-bounds access. It is the panic value when
	// an injected exit func returns.
	FatalError = diag.FatalError
)

// Here returns the location skip frames above its caller; Here(0) is the line
// calling Here.
func Here(skip int) Location {
	return diag.Caller(skip + 1)
}

// Vector is a bounds-checked growable array. The zero value is not usable;
// construct with New or one of its siblings.
type Vector[T any] struct {
	items []T
	alloc primitives.Allocator[T]
	prov  diag.Provenance
	rep   diag.Reporter
}

func newVector[T any](caller Location, opts []Option) *Vector[T] {
	alloc, rep, loc := buildOptions[T](caller, opts)
	v := &Vector[T]{alloc: alloc, rep: rep}
	v.prov.Construct(loc)
	return v
}

// New returns an empty vector.
func New[T any](opts ...Option) *Vector[T] {
	return newVector[T](diag.Caller(1), opts)
}

// NewWithSize returns a vector of n zero values.
func NewWithSize[T any](n int, opts ...Option) *Vector[T] {
	primitives.Require(n >= 0, name, "negative size %d", n)
	v := newVector[T](diag.Caller(1), opts)
	v.items = make([]T, n)
	primitives.ZeroRange(v.alloc, v.items)
	return v
}

// NewFilled returns a vector of n copies of value.
func NewFilled[T any](n int, value T, opts ...Option) *Vector[T] {
	primitives.Require(n >= 0, name, "negative size %d", n)
	v := newVector[T](diag.Caller(1), opts)
	v.items = make([]T, n)
	primitives.FillRange(v.alloc, v.items, value)
	return v
}

// NewFromSlice returns a vector holding copies of src.
func NewFromSlice[T any](src []T, opts ...Option) *Vector[T] {
	v := newVector[T](diag.Caller(1), opts)
	v.items = make([]T, len(src))
	primitives.CopyRange(v.alloc, v.items, src)
	return v
}

// NewFromSeq returns a vector holding copies of the values of seq.
func NewFromSeq[T any](seq iter.Seq[T], opts ...Option) *Vector[T] {
	v := newVector[T](diag.Caller(1), opts)
	for x := range seq {
		v.items = append(v.items, *new(T))
		v.alloc.Construct(&v.items[len(v.items)-1], primitives.Copy(x))
	}
	return v
}

// Of returns a vector holding copies of values.
func Of[T any](values ...T) *Vector[T] {
	v := newVector[T](diag.Caller(1), nil)
	v.items = make([]T, len(values))
	primitives.CopyRange(v.alloc, v.items, values)
	return v
}

// Site returns a view of v whose operations attribute themselves to loc.
func (v *Vector[T]) Site(loc Location) Site[T] {
	return Site[T]{v: v, loc: loc}
}

// Clone returns a deep copy of v constructed at the caller. The allocator and
// error reporting are shared; the history is not.
func (v *Vector[T]) Clone() *Vector[T] {
	c := &Vector[T]{alloc: v.alloc, rep: v.rep}
	c.prov.Construct(diag.Caller(1))
	c.items = make([]T, len(v.items))
	primitives.CopyRange(c.alloc, c.items, v.items)
	return c
}

// Move returns a vector that takes over v's elements, constructed at the
// caller. v is left empty and records the move as a size change.
func (v *Vector[T]) Move() *Vector[T] {
	loc := diag.Caller(1)
	m := &Vector[T]{items: v.items, alloc: v.alloc, rep: v.rep}
	m.prov.Construct(loc)
	old := len(v.items)
	v.items = nil
	v.prov.Record(old, 0, loc)
	return m
}

// Provenance returns the recorded history of v.
func (v *Vector[T]) Provenance() Provenance {
	return v.prov
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return len(v.items) }

// Cap returns the capacity of the underlying slice.
func (v *Vector[T]) Cap() int { return cap(v.items) }

// Empty reports whether v holds no elements.
func (v *Vector[T]) Empty() bool { return len(v.items) == 0 }

// MaxSize returns the allocator's limit.
func (v *Vector[T]) MaxSize() int { return v.alloc.MaxSize() }

// Data returns the live elements, or nil when v is empty. Writes through the
// result are not size changes and are not recorded.
func (v *Vector[T]) Data() []T {
	if len(v.items) == 0 {
		return nil
	}
	return v.items
}

// Reserve grows the capacity to at least n without changing the size.
func (v *Vector[T]) Reserve(n int) {
	if n > cap(v.items) {
		v.items = slices.Grow(v.items, n-len(v.items))
	}
}

// At returns element i, or a *primitives.RangeError. Unlike Get it never ends
// the process.
func (v *Vector[T]) At(i int) (T, error) {
	if err := primitives.CheckIndex(name, i, len(v.items)); err != nil {
		var zero T
		return zero, err
	}
	return v.items[i], nil
}

// All iterates index/value pairs front to back.
func (v *Vector[T]) All() iter.Seq2[int, T] { return slices.All(v.items) }

// Values iterates values front to back.
func (v *Vector[T]) Values() iter.Seq[T] { return slices.Values(v.items) }

// Backward iterates index/value pairs back to front.
func (v *Vector[T]) Backward() iter.Seq2[int, T] { return slices.Backward(v.items) }

// String renders v as {e0, e1, ...}.
func (v *Vector[T]) String() string {
	return primitives.Render(v.Values())
}

// Get returns element i. An out-of-range i is fatal.
func (v *Vector[T]) Get(i int) T { return v.Site(diag.Caller(1)).Get(i) }

// Ref returns a pointer to element i. An out-of-range i is fatal.
func (v *Vector[T]) Ref(i int) *T { return v.Site(diag.Caller(1)).Ref(i) }

// Set overwrites element i. An out-of-range i is fatal.
func (v *Vector[T]) Set(i int, value T) { v.Site(diag.Caller(1)).Set(i, value) }

// Front returns the first element. Fatal when v is empty.
func (v *Vector[T]) Front() T { return v.Site(diag.Caller(1)).Front() }

// Back returns the last element. Fatal when v is empty.
func (v *Vector[T]) Back() T { return v.Site(diag.Caller(1)).Back() }

func (v *Vector[T]) Clear() { v.Site(diag.Caller(1)).Clear() }

func (v *Vector[T]) Insert(pos int, value T) int {
	return v.Site(diag.Caller(1)).Insert(pos, value)
}

func (v *Vector[T]) InsertMove(pos int, value *T) int {
	return v.Site(diag.Caller(1)).InsertMove(pos, value)
}

func (v *Vector[T]) InsertN(pos, n int, value T) int {
	return v.Site(diag.Caller(1)).InsertN(pos, n, value)
}

func (v *Vector[T]) InsertSlice(pos int, values []T) int {
	return v.Site(diag.Caller(1)).InsertSlice(pos, values)
}

func (v *Vector[T]) InsertSeq(pos int, seq iter.Seq[T]) int {
	return v.Site(diag.Caller(1)).InsertSeq(pos, seq)
}

func (v *Vector[T]) Emplace(pos int, build func() T) int {
	return v.Site(diag.Caller(1)).Emplace(pos, build)
}

func (v *Vector[T]) Erase(pos int) int {
	return v.Site(diag.Caller(1)).Erase(pos)
}

func (v *Vector[T]) EraseRange(first, last int) int {
	return v.Site(diag.Caller(1)).EraseRange(first, last)
}

func (v *Vector[T]) PushBack(value T) { v.Site(diag.Caller(1)).PushBack(value) }

func (v *Vector[T]) PushBackMove(value *T) { v.Site(diag.Caller(1)).PushBackMove(value) }

func (v *Vector[T]) EmplaceBack(build func() T) *T {
	return v.Site(diag.Caller(1)).EmplaceBack(build)
}

func (v *Vector[T]) PopBack() { v.Site(diag.Caller(1)).PopBack() }

func (v *Vector[T]) Resize(n int) { v.Site(diag.Caller(1)).Resize(n) }

func (v *Vector[T]) ResizeFill(n int, value T) { v.Site(diag.Caller(1)).ResizeFill(n, value) }

func (v *Vector[T]) Assign(n int, value T) { v.Site(diag.Caller(1)).Assign(n, value) }

func (v *Vector[T]) AssignSlice(values []T) { v.Site(diag.Caller(1)).AssignSlice(values) }

func (v *Vector[T]) AssignSeq(seq iter.Seq[T]) { v.Site(diag.Caller(1)).AssignSeq(seq) }

func (v *Vector[T]) CopyFrom(src *Vector[T]) { v.Site(diag.Caller(1)).CopyFrom(src) }

func (v *Vector[T]) MoveFrom(src *Vector[T]) { v.Site(diag.Caller(1)).MoveFrom(src) }

func (v *Vector[T]) Destroy() { v.Site(diag.Caller(1)).Destroy() }

// Swap exchanges the contents of v and other, recording the change on both.
func (v *Vector[T]) Swap(other *Vector[T]) { v.Site(diag.Caller(1)).Swap(other) }

// Swap exchanges a and b, attributing the size change of both to the caller
// of Swap.
func Swap[T any](a, b *Vector[T]) {
	a.Site(diag.Caller(1)).Swap(b)
}
