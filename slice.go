package vectorx

import (
	"iter"
	"slices"

	"github.com/comalice/vectorx/internal/primitives"
)

const sliceName = "slice"

// Slice implements Vector over a plain Go slice with no allocator and no
// lifetime tracking. Elements are copied through Cloner like in the other
// vectors, but never released. It is the behavior the other variants are
// checked against.
type Slice[T any] struct {
	items []T
}

// NewSlice returns a Slice holding copies of values.
func NewSlice[T any](values ...T) *Slice[T] {
	s := &Slice[T]{}
	s.InsertSlice(0, values)
	return s
}

func (s *Slice[T]) Len() int     { return len(s.items) }
func (s *Slice[T]) Cap() int     { return cap(s.items) }
func (s *Slice[T]) MaxSize() int { return primitives.IndexLimit[T]() }
func (s *Slice[T]) Empty() bool  { return len(s.items) == 0 }

func (s *Slice[T]) Data() []T {
	if len(s.items) == 0 {
		return nil
	}
	return s.items
}

func (s *Slice[T]) Get(i int) T        { return s.items[i] }
func (s *Slice[T]) Ref(i int) *T       { return &s.items[i] }
func (s *Slice[T]) Set(i int, value T) { s.items[i] = primitives.Copy(value) }

func (s *Slice[T]) At(i int) (T, error) {
	if err := primitives.CheckIndex(sliceName, i, len(s.items)); err != nil {
		var zero T
		return zero, err
	}
	return s.items[i], nil
}

func (s *Slice[T]) Front() T {
	primitives.Require(len(s.items) > 0, sliceName, "front of empty vector")
	return s.items[0]
}

func (s *Slice[T]) Back() T {
	primitives.Require(len(s.items) > 0, sliceName, "back of empty vector")
	return s.items[len(s.items)-1]
}

func (s *Slice[T]) All() iter.Seq2[int, T]      { return slices.All(s.items) }
func (s *Slice[T]) Values() iter.Seq[T]         { return slices.Values(s.items) }
func (s *Slice[T]) Backward() iter.Seq2[int, T] { return slices.Backward(s.items) }

func (s *Slice[T]) PushBack(value T) { s.items = append(s.items, primitives.Copy(value)) }

func (s *Slice[T]) PushBackMove(value *T) {
	s.items = append(s.items, *value)
	*value = *new(T)
}

func (s *Slice[T]) EmplaceBack(build func() T) *T {
	s.items = append(s.items, build())
	return &s.items[len(s.items)-1]
}

func (s *Slice[T]) PopBack() {
	primitives.Require(len(s.items) > 0, sliceName, "pop back on empty vector")
	s.items = s.items[:len(s.items)-1]
}

func (s *Slice[T]) checkPos(pos, n int) {
	primitives.Require(pos >= 0 && pos <= len(s.items), sliceName, "insert position %d outside [0, %d]", pos, len(s.items))
	primitives.Require(n >= 0, sliceName, "negative insert count %d", n)
}

func (s *Slice[T]) Insert(pos int, value T) int {
	return s.InsertSlice(pos, []T{value})
}

func (s *Slice[T]) InsertMove(pos int, value *T) int {
	s.checkPos(pos, 1)
	s.items = slices.Insert(s.items, pos, *value)
	*value = *new(T)
	return pos
}

func (s *Slice[T]) InsertN(pos, n int, value T) int {
	s.checkPos(pos, n)
	values := make([]T, n)
	for i := range values {
		values[i] = primitives.Copy(value)
	}
	s.items = slices.Insert(s.items, pos, values...)
	return pos
}

func (s *Slice[T]) InsertSlice(pos int, values []T) int {
	s.checkPos(pos, len(values))
	copies := make([]T, len(values))
	for i, x := range values {
		copies[i] = primitives.Copy(x)
	}
	s.items = slices.Insert(s.items, pos, copies...)
	return pos
}

func (s *Slice[T]) InsertSeq(pos int, seq iter.Seq[T]) int {
	return s.InsertSlice(pos, slices.Collect(seq))
}

func (s *Slice[T]) Erase(pos int) int {
	primitives.Require(pos >= 0 && pos < len(s.items), sliceName, "erase position %d outside [0, %d)", pos, len(s.items))
	return s.EraseRange(pos, pos+1)
}

func (s *Slice[T]) EraseRange(first, last int) int {
	primitives.Require(first >= 0 && first <= last && last <= len(s.items), sliceName,
		"erase range [%d, %d) outside [0, %d]", first, last, len(s.items))
	s.items = slices.Delete(s.items, first, last)
	return first
}

func (s *Slice[T]) Resize(n int) {
	if !s.truncate(n) {
		s.items = append(s.items, make([]T, n-len(s.items))...)
	}
}

func (s *Slice[T]) ResizeFill(n int, value T) {
	if !s.truncate(n) {
		s.InsertN(len(s.items), n-len(s.items), value)
	}
}

// truncate shrinks s to n elements and reports whether n <= Len().
func (s *Slice[T]) truncate(n int) bool {
	primitives.Require(n >= 0, sliceName, "negative size %d", n)
	if n > len(s.items) {
		return false
	}
	clear(s.items[n:])
	s.items = s.items[:n]
	return true
}

func (s *Slice[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

func (s *Slice[T]) Destroy() { s.items = nil }

func (s *Slice[T]) String() string { return primitives.Render(s.Values()) }
