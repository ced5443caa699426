package hybrid

import (
	"context"
	"iter"
	"log/slog"
	"slices"

	"github.com/comalice/vectorx/internal/diag"
	"github.com/comalice/vectorx/internal/primitives"
)

const name = "hybrid"

// Vector is a dynamic array with inline storage for its first elements.
type Vector[T any] struct {
	st    storage[T]
	size  int
	alloc primitives.Allocator[T]
}

// New returns an empty vector with an inline buffer of the given size.
// Panics if inline < 0.
func New[T any](inline int, opts ...Option) *Vector[T] {
	if inline < 0 {
		panic("hybrid: inline capacity must not be negative")
	}
	return &Vector[T]{
		st:    storage[T]{loc: Inline, inline: make([]T, inline)},
		alloc: buildAllocator[T](opts),
	}
}

// NewWithSize returns a vector holding n zero values.
func NewWithSize[T any](inline, n int, opts ...Option) *Vector[T] {
	v := New[T](inline, opts...)
	v.Resize(n)
	return v
}

// NewFilled returns a vector holding n copies of value.
func NewFilled[T any](inline, n int, value T, opts ...Option) *Vector[T] {
	v := New[T](inline, opts...)
	v.ResizeFill(n, value)
	return v
}

// NewFromSlice returns a vector holding copies of src.
func NewFromSlice[T any](inline int, src []T, opts ...Option) *Vector[T] {
	v := New[T](inline, opts...)
	v.InsertSlice(0, src)
	return v
}

// NewFromSeq returns a vector holding copies of the values of seq.
func NewFromSeq[T any](inline int, seq iter.Seq[T], opts ...Option) *Vector[T] {
	v := New[T](inline, opts...)
	for x := range seq {
		v.PushBack(x)
	}
	return v
}

// Of returns a vector with the given inline capacity holding copies of values.
func Of[T any](inline int, values ...T) *Vector[T] {
	return NewFromSlice(inline, values)
}

func (v *Vector[T]) live() []T { return v.st.active()[:v.size] }

// Location reports whether the elements live inline or on the heap.
func (v *Vector[T]) Location() Location { return v.st.loc }

// InlineCap returns the size of the inline buffer.
func (v *Vector[T]) InlineCap() int { return len(v.st.inline) }

func (v *Vector[T]) Len() int { return v.size }

// Cap returns the inline capacity while Inline and the heap buffer length
// while Heap.
func (v *Vector[T]) Cap() int { return v.st.capacity() }

// MaxSize is the smaller of the index-arithmetic limit for T and the
// allocator's own limit.
func (v *Vector[T]) MaxSize() int {
	return min(primitives.IndexLimit[T](), v.alloc.MaxSize())
}

func (v *Vector[T]) Empty() bool { return v.size == 0 }

// Data returns the live elements, or nil when v is empty.
func (v *Vector[T]) Data() []T {
	if v.size == 0 {
		return nil
	}
	return v.live()
}

func (v *Vector[T]) Get(i int) T { return v.live()[i] }

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
	return v.live()[i], nil
}

func (v *Vector[T]) Front() T {
	primitives.Require(v.size > 0, name, "front of empty vector")
	return v.live()[0]
}

func (v *Vector[T]) Back() T {
	primitives.Require(v.size > 0, name, "back of empty vector")
	return v.live()[v.size-1]
}

func (v *Vector[T]) All() iter.Seq2[int, T] { return slices.All(v.live()) }

func (v *Vector[T]) Values() iter.Seq[T] { return slices.Values(v.live()) }

func (v *Vector[T]) Backward() iter.Seq2[int, T] { return slices.Backward(v.live()) }

func (v *Vector[T]) String() string { return primitives.Render(v.Values()) }

// Reserve makes room for at least n elements. It is a no-op when n <= Cap().
// Otherwise a heap buffer of exactly n slots replaces the current storage and
// every element is relocated into it in index order.
func (v *Vector[T]) Reserve(n int) {
	if n <= v.Cap() {
		return
	}
	primitives.Require(n <= v.MaxSize(), name, "reserve of %d exceeds max size %d", n, v.MaxSize())
	from := v.st.loc
	buf := v.alloc.Allocate(n)
	primitives.RelocateRange(v.alloc, buf, v.live())
	if old := v.st.adopt(buf); old != nil {
		v.alloc.Deallocate(old)
	}
	logTransition("hybrid vector reallocated", from, v.st.loc, v.size, n)
}

// grow doubles the capacity until it holds need elements, stopping at
// MaxSize.
func (v *Vector[T]) grow(need int) {
	if need <= v.Cap() {
		return
	}
	limit := v.MaxSize()
	primitives.Require(need <= limit, name, "size %d exceeds max size %d", need, limit)
	c := max(v.Cap(), 1)
	for c < need && c <= limit/2 {
		c *= 2
	}
	v.Reserve(max(min(c, limit), need))
}

// ShrinkToFit releases unused capacity. Elements move back inline when they
// fit; otherwise the heap buffer is replaced by one of exactly Len() slots.
func (v *Vector[T]) ShrinkToFit() {
	if v.st.loc == Inline {
		return
	}
	if v.size <= len(v.st.inline) {
		primitives.RelocateRange(v.alloc, v.st.inline, v.live())
		v.alloc.Deallocate(v.st.demote())
		logTransition("hybrid vector moved inline", Heap, Inline, v.size, len(v.st.inline))
		return
	}
	if v.size == v.Cap() {
		return
	}
	buf := v.alloc.Allocate(v.size)
	primitives.RelocateRange(v.alloc, buf, v.live())
	v.alloc.Deallocate(v.st.adopt(buf))
	logTransition("hybrid vector shrunk", Heap, Heap, v.size, v.size)
}

func logTransition(msg string, from, to Location, size, capacity int) {
	l := diag.Logger()
	ctx := context.Background()
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.LogAttrs(ctx, slog.LevelDebug, msg,
		slog.String("from", from.String()),
		slog.String("to", to.String()),
		slog.Int("size", size),
		slog.Int("capacity", capacity),
	)
}

// next returns the first free slot, growing first when v is full.
func (v *Vector[T]) next() *T {
	v.grow(v.size + 1)
	return &v.st.active()[v.size]
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

// EmplaceBack appends build() and returns a pointer to the new element. The
// pointer is invalidated by the next reallocation.
func (v *Vector[T]) EmplaceBack(build func() T) *T {
	slot := v.next()
	v.alloc.Construct(slot, build())
	v.size++
	return slot
}

func (v *Vector[T]) PopBack() {
	primitives.Require(v.size > 0, name, "pop back on empty vector")
	v.size--
	v.alloc.Destroy(&v.st.active()[v.size])
}

// gap grows if needed, shifts the elements from pos onward n slots right and
// returns the n vacated slots. Slots are located after growth, since Reserve
// may have moved the elements.
func (v *Vector[T]) gap(pos, n int) []T {
	v.checkInsert(pos, n)
	v.grow(v.size + n)
	buf := v.st.active()
	primitives.OpenGap(v.alloc, buf, v.size, pos, n)
	v.size += n
	return buf[pos : pos+n]
}

// checkInsert panics unless n elements can be inserted before pos.
func (v *Vector[T]) checkInsert(pos, n int) {
	primitives.Require(pos >= 0 && pos <= v.size, name, "insert position %d outside [0, %d]", pos, v.size)
	primitives.Require(n >= 0, name, "negative insert count %d", n)
	primitives.Require(n <= v.MaxSize()-v.size, name, "insert of %d would exceed max size %d (size %d)", n, v.MaxSize(), v.size)
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
	v.size = primitives.CloseGap(v.alloc, v.st.active(), v.size, first, last)
	return first
}

func (v *Vector[T]) resize(n int, fill func([]T)) {
	primitives.Require(n >= 0, name, "negative size %d", n)
	if n < v.size {
		primitives.DestroyRange(v.alloc, v.live()[n:])
	} else {
		v.Reserve(n)
		fill(v.st.active()[v.size:n])
	}
	v.size = n
}

// Resize truncates v to n elements or appends zero values up to n. The
// capacity never shrinks; use ShrinkToFit for that.
func (v *Vector[T]) Resize(n int) {
	v.resize(n, func(dst []T) { primitives.ZeroRange(v.alloc, dst) })
}

// ResizeFill truncates v to n elements or appends copies of value up to n.
func (v *Vector[T]) ResizeFill(n int, value T) {
	v.resize(n, func(dst []T) { primitives.FillRange(v.alloc, dst, value) })
}

// Clear destroys every element. The storage, inline or heap, is kept.
func (v *Vector[T]) Clear() {
	primitives.DestroyRange(v.alloc, v.live())
	v.size = 0
}

// Destroy destroys every element and returns any heap buffer to the
// allocator. v is left empty and Inline.
func (v *Vector[T]) Destroy() {
	v.Clear()
	if v.st.loc == Heap {
		v.alloc.Deallocate(v.st.demote())
	}
}

// Clone returns a vector with the same inline capacity holding copies of v's
// elements.
func (v *Vector[T]) Clone() *Vector[T] {
	c := &Vector[T]{
		st:    storage[T]{loc: Inline, inline: make([]T, len(v.st.inline))},
		alloc: v.alloc,
	}
	c.Reserve(v.size)
	primitives.CopyRange(c.alloc, c.st.active(), v.live())
	c.size = v.size
	return c
}

// Move returns a vector that has taken v's elements. A heap buffer is handed
// over as is; inline elements are relocated one by one. v is left empty,
// Inline and without a heap buffer.
func (v *Vector[T]) Move() *Vector[T] {
	m := &Vector[T]{
		st:    storage[T]{loc: Inline, inline: make([]T, len(v.st.inline))},
		alloc: v.alloc,
	}
	m.take(v)
	return m
}

// CopyFrom replaces v's elements with copies of src's.
func (v *Vector[T]) CopyFrom(src *Vector[T]) {
	if src == v {
		return
	}
	v.Clear()
	v.Reserve(src.size)
	primitives.CopyRange(v.alloc, v.st.active(), src.live())
	v.size = src.size
}

// MoveFrom replaces v's elements with src's, leaving src empty and Inline.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if src == v {
		return
	}
	v.Destroy()
	v.alloc = src.alloc
	v.take(src)
}

// take moves src's elements into the empty, Inline v. src's heap buffer is
// adopted only when it is larger than v's inline buffer, so v is never on the
// heap with elements that fit inline.
func (v *Vector[T]) take(src *Vector[T]) {
	if src.st.loc == Heap && len(src.st.heap) > len(v.st.inline) {
		v.st.adopt(src.st.demote())
		v.size, src.size = src.size, 0
		return
	}
	v.Reserve(src.size)
	primitives.RelocateRange(v.alloc, v.st.active(), src.live())
	if src.st.loc == Heap {
		src.alloc.Deallocate(src.st.demote())
	}
	v.size, src.size = src.size, 0
}

// Swap is not supported and always panics with an error matching
// primitives.ErrUnsupported.
func (v *Vector[T]) Swap(*Vector[T]) {
	panic(primitives.Unsupported(name, "swap"))
}
