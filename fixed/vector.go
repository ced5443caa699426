package fixed

import (
	"iter"
	"slices"

	"github.com/comalice/vectorx/internal/primitives"
)

const name = "fixed"

// Vector is a dynamic array with a fixed capacity. Slots [0, Len()) are live;
// the rest hold zero values until constructed.
type Vector[T any] struct {
	buf   []T
	size  int
	alloc primitives.Allocator[T]
}

// New returns an empty vector with room for exactly capacity elements.
// Panics if capacity < 0.
func New[T any](capacity int, opts ...Option) *Vector[T] {
	if capacity < 0 {
		panic("fixed: capacity must not be negative")
	}
	return &Vector[T]{
		buf:   make([]T, capacity),
		alloc: buildAllocator[T](opts),
	}
}

// NewWithSize returns a vector holding n zero values.
func NewWithSize[T any](capacity, n int, opts ...Option) *Vector[T] {
	v := New[T](capacity, opts...)
	v.Resize(n)
	return v
}

// NewFilled returns a vector holding n copies of value.
func NewFilled[T any](capacity, n int, value T, opts ...Option) *Vector[T] {
	v := New[T](capacity, opts...)
	v.ResizeFill(n, value)
	return v
}

// NewFromSlice returns a vector holding copies of src.
func NewFromSlice[T any](capacity int, src []T, opts ...Option) *Vector[T] {
	v := New[T](capacity, opts...)
	v.InsertSlice(0, src)
	return v
}

// NewFromSeq returns a vector holding copies of the values of seq.
func NewFromSeq[T any](capacity int, seq iter.Seq[T], opts ...Option) *Vector[T] {
	v := New[T](capacity, opts...)
	for x := range seq {
		v.PushBack(x)
	}
	return v
}

// Of returns a vector of the given capacity holding copies of values.
func Of[T any](capacity int, values ...T) *Vector[T] {
	return NewFromSlice(capacity, values)
}

func (v *Vector[T]) live() []T { return v.buf[:v.size] }

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.size }

// Cap returns the fixed capacity.
func (v *Vector[T]) Cap() int { return len(v.buf) }

// MaxSize equals Cap: the size can never exceed it.
func (v *Vector[T]) MaxSize() int { return len(v.buf) }

func (v *Vector[T]) Empty() bool { return v.size == 0 }

// Data returns the live elements, or nil when v is empty.
func (v *Vector[T]) Data() []T {
	if v.size == 0 {
		return nil
	}
	return v.live()
}

// Get returns element i. Only Go's own bounds check on the live elements
// applies.
func (v *Vector[T]) Get(i int) T { return v.live()[i] }

// Ref returns a pointer to element i.
func (v *Vector[T]) Ref(i int) *T { return &v.live()[i] }

// Set destroys element i and copy-constructs value in its place.
func (v *Vector[T]) Set(i int, value T) {
	slot := &v.live()[i]
	value = primitives.Copy(value)
	v.alloc.Destroy(slot)
	v.alloc.Construct(slot, value)
}

// At returns element i or a *primitives.RangeError carrying i and Len().
func (v *Vector[T]) At(i int) (T, error) {
	if err := primitives.CheckIndex(name, i, v.size); err != nil {
		var zero T
		return zero, err
	}
	return v.buf[i], nil
}

func (v *Vector[T]) Front() T {
	primitives.Require(v.size > 0, name, "front of empty vector")
	return v.buf[0]
}

func (v *Vector[T]) Back() T {
	primitives.Require(v.size > 0, name, "back of empty vector")
	return v.buf[v.size-1]
}

func (v *Vector[T]) All() iter.Seq2[int, T] { return slices.All(v.live()) }

func (v *Vector[T]) Values() iter.Seq[T] { return slices.Values(v.live()) }

func (v *Vector[T]) Backward() iter.Seq2[int, T] { return slices.Backward(v.live()) }

func (v *Vector[T]) String() string { return primitives.Render(v.Values()) }

// next returns the first free slot. Panics when v is full.
func (v *Vector[T]) next() *T {
	primitives.Require(v.size < len(v.buf), name, "push back on full vector (capacity %d)", len(v.buf))
	return &v.buf[v.size]
}

// PushBack appends a copy of value.
func (v *Vector[T]) PushBack(value T) {
	slot := v.next()
	v.alloc.Construct(slot, primitives.Copy(value))
	v.size++
}

// PushBackMove appends *value without copying it and zeroes *value.
func (v *Vector[T]) PushBackMove(value *T) {
	primitives.MoveConstruct(v.alloc, v.next(), value)
	v.size++
}

// EmplaceBack appends build() and returns a pointer to the new element.
func (v *Vector[T]) EmplaceBack(build func() T) *T {
	slot := v.next()
	v.alloc.Construct(slot, build())
	v.size++
	return slot
}

func (v *Vector[T]) PopBack() {
	primitives.Require(v.size > 0, name, "pop back on empty vector")
	v.size--
	v.alloc.Destroy(&v.buf[v.size])
}

// gap shifts the elements from pos onward n slots right and returns the n
// vacated slots.
func (v *Vector[T]) gap(pos, n int) []T {
	v.checkInsert(pos, n)
	primitives.OpenGap(v.alloc, v.buf, v.size, pos, n)
	v.size += n
	return v.buf[pos : pos+n]
}

// checkInsert panics unless n elements can be inserted before pos.
func (v *Vector[T]) checkInsert(pos, n int) {
	primitives.Require(pos >= 0 && pos <= v.size, name, "insert position %d outside [0, %d]", pos, v.size)
	primitives.Require(n >= 0, name, "negative insert count %d", n)
	primitives.Require(n <= len(v.buf)-v.size, name, "insert of %d would exceed capacity %d (size %d)", n, len(v.buf), v.size)
}

// Insert copies value in before pos and returns pos.
func (v *Vector[T]) Insert(pos int, value T) int {
	slot := &v.gap(pos, 1)[0]
	v.alloc.Construct(slot, primitives.Copy(value))
	return pos
}

// InsertMove moves *value in before pos, zeroes *value and returns pos.
func (v *Vector[T]) InsertMove(pos int, value *T) int {
	primitives.MoveConstruct(v.alloc, &v.gap(pos, 1)[0], value)
	return pos
}

// InsertN inserts n copies of value before pos and returns pos.
func (v *Vector[T]) InsertN(pos, n int, value T) int {
	primitives.FillRange(v.alloc, v.gap(pos, n), value)
	return pos
}

// InsertSlice inserts copies of values before pos and returns pos. values may
// alias v's own elements.
func (v *Vector[T]) InsertSlice(pos int, values []T) int {
	v.checkInsert(pos, len(values))
	copies := make([]T, len(values))
	for i, x := range values {
		copies[i] = primitives.Copy(x)
	}
	dst := v.gap(pos, len(copies))
	for i := range dst {
		v.alloc.Construct(&dst[i], copies[i])
	}
	return pos
}

// InsertSeq inserts copies of the values of seq before pos and returns pos.
func (v *Vector[T]) InsertSeq(pos int, seq iter.Seq[T]) int {
	return v.InsertSlice(pos, slices.Collect(seq))
}

// Erase removes element pos and returns the offset of the element that
// followed it.
func (v *Vector[T]) Erase(pos int) int {
	primitives.Require(pos >= 0 && pos < v.size, name, "erase position %d outside [0, %d)", pos, v.size)
	return v.EraseRange(pos, pos+1)
}

// EraseRange removes [first, last) and returns first.
func (v *Vector[T]) EraseRange(first, last int) int {
	primitives.Require(first >= 0 && first <= last && last <= v.size, name,
		"erase range [%d, %d) outside [0, %d]", first, last, v.size)
	v.size = primitives.CloseGap(v.alloc, v.buf, v.size, first, last)
	return first
}

func (v *Vector[T]) resize(n int, fill func([]T)) {
	primitives.Require(n >= 0 && n <= len(v.buf), name, "resize to %d outside [0, %d]", n, len(v.buf))
	if n < v.size {
		primitives.DestroyRange(v.alloc, v.buf[n:v.size])
	} else {
		fill(v.buf[v.size:n])
	}
	v.size = n
}

// Resize truncates v to n elements or appends zero values up to n.
func (v *Vector[T]) Resize(n int) {
	v.resize(n, func(dst []T) { primitives.ZeroRange(v.alloc, dst) })
}

// ResizeFill truncates v to n elements or appends copies of value up to n.
func (v *Vector[T]) ResizeFill(n int, value T) {
	v.resize(n, func(dst []T) { primitives.FillRange(v.alloc, dst, value) })
}

// Clear destroys every element. The capacity is untouched.
func (v *Vector[T]) Clear() {
	primitives.DestroyRange(v.alloc, v.live())
	v.size = 0
}

// Destroy ends the lifetime of every element. The buffer belongs to the
// vector, so there is nothing else to release.
func (v *Vector[T]) Destroy() { v.Clear() }

// Clone returns a vector of the same capacity holding copies of v's elements.
func (v *Vector[T]) Clone() *Vector[T] {
	c := &Vector[T]{buf: make([]T, len(v.buf)), alloc: v.alloc}
	primitives.CopyRange(c.alloc, c.buf, v.live())
	c.size = v.size
	return c
}

// Move returns a vector of the same capacity that has taken v's elements.
// v is left empty.
func (v *Vector[T]) Move() *Vector[T] {
	m := &Vector[T]{buf: make([]T, len(v.buf)), alloc: v.alloc}
	primitives.RelocateRange(m.alloc, m.buf, v.live())
	m.size, v.size = v.size, 0
	return m
}

// CopyFrom replaces v's elements with copies of src's. src must fit.
func (v *Vector[T]) CopyFrom(src *Vector[T]) {
	if src == v {
		return
	}
	primitives.Require(src.size <= len(v.buf), name, "copy of %d elements exceeds capacity %d", src.size, len(v.buf))
	v.Clear()
	primitives.CopyRange(v.alloc, v.buf, src.live())
	v.size = src.size
}

// MoveFrom replaces v's elements with src's, leaving src empty. src must fit.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if src == v {
		return
	}
	primitives.Require(src.size <= len(v.buf), name, "move of %d elements exceeds capacity %d", src.size, len(v.buf))
	v.Clear()
	v.alloc = src.alloc
	primitives.RelocateRange(v.alloc, v.buf, src.live())
	v.size, src.size = src.size, 0
}

// Swap is not supported and always panics with an error matching
// primitives.ErrUnsupported.
func (v *Vector[T]) Swap(*Vector[T]) {
	panic(primitives.Unsupported(name, "swap"))
}
