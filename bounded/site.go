package bounded

import (
	"iter"
	"slices"

	"github.com/comalice/vectorx/internal/diag"
	"github.com/comalice/vectorx/internal/primitives"
)

// Site is a Vector seen from one call site. Its methods behave exactly like
// the Vector methods of the same name but attribute accesses and size changes
// to the Site's location.
type Site[T any] struct {
	v   *Vector[T]
	loc Location
}

// Location returns the call site s attributes to.
func (s Site[T]) Location() Location { return s.loc }

func (s Site[T]) check(i int) {
	if i >= 0 && i < len(s.v.items) {
		return
	}
	s.v.rep.Fail(&diag.FatalError{
		Index:      i,
		Size:       len(s.v.items),
		Site:       s.loc,
		Provenance: s.v.prov,
	})
}

// record captures the size around fn and stores the change at s.loc.
func (s Site[T]) record(fn func()) {
	old := len(s.v.items)
	fn()
	s.v.prov.Record(old, len(s.v.items), s.loc)
}

func (s Site[T]) Get(i int) T {
	s.check(i)
	return s.v.items[i]
}

func (s Site[T]) Ref(i int) *T {
	s.check(i)
	return &s.v.items[i]
}

// Set destroys element i and copy-constructs value in its place.
func (s Site[T]) Set(i int, value T) {
	s.check(i)
	value = primitives.Copy(value)
	s.v.alloc.Destroy(&s.v.items[i])
	s.v.alloc.Construct(&s.v.items[i], value)
}

func (s Site[T]) Front() T {
	return s.Get(0)
}

func (s Site[T]) Back() T {
	return s.Get(len(s.v.items) - 1)
}

func (s Site[T]) Clear() {
	s.record(func() {
		primitives.DestroyRange(s.v.alloc, s.v.items)
		s.v.items = s.v.items[:0]
	})
}

// open makes n empty slots at pos and returns them.
func (s Site[T]) open(pos, n int) []T {
	primitives.Require(pos >= 0 && pos <= len(s.v.items), name, "insert position %d outside [0, %d]", pos, len(s.v.items))
	primitives.Require(n >= 0, name, "negative insert count %d", n)
	s.v.items = slices.Insert(s.v.items, pos, make([]T, n)...)
	return s.v.items[pos : pos+n]
}

func (s Site[T]) Insert(pos int, value T) int {
	s.record(func() {
		s.v.alloc.Construct(&s.open(pos, 1)[0], primitives.Copy(value))
	})
	return pos
}

// InsertMove inserts *value without copying it and zeroes *value.
func (s Site[T]) InsertMove(pos int, value *T) int {
	s.record(func() {
		primitives.MoveConstruct(s.v.alloc, &s.open(pos, 1)[0], value)
	})
	return pos
}

func (s Site[T]) InsertN(pos, n int, value T) int {
	s.record(func() {
		primitives.FillRange(s.v.alloc, s.open(pos, n), value)
	})
	return pos
}

// InsertSlice inserts copies of values before pos. values may alias the
// vector's own Data.
func (s Site[T]) InsertSlice(pos int, values []T) int {
	values = slices.Clone(values)
	s.record(func() {
		primitives.CopyRange(s.v.alloc, s.open(pos, len(values)), values)
	})
	return pos
}

func (s Site[T]) InsertSeq(pos int, seq iter.Seq[T]) int {
	return s.InsertSlice(pos, slices.Collect(seq))
}

func (s Site[T]) Emplace(pos int, build func() T) int {
	s.record(func() {
		s.v.alloc.Construct(&s.open(pos, 1)[0], build())
	})
	return pos
}

func (s Site[T]) Erase(pos int) int {
	primitives.Require(pos >= 0 && pos < len(s.v.items), name, "erase position %d outside [0, %d)", pos, len(s.v.items))
	return s.EraseRange(pos, pos+1)
}

func (s Site[T]) EraseRange(first, last int) int {
	primitives.Require(first >= 0 && first <= last && last <= len(s.v.items), name,
		"erase range [%d, %d) outside [0, %d]", first, last, len(s.v.items))
	s.record(func() {
		primitives.DestroyRange(s.v.alloc, s.v.items[first:last])
		s.v.items = slices.Delete(s.v.items, first, last)
	})
	return first
}

func (s Site[T]) PushBack(value T) {
	s.record(func() {
		s.v.items = append(s.v.items, *new(T))
		s.v.alloc.Construct(&s.v.items[len(s.v.items)-1], primitives.Copy(value))
	})
}

// PushBackMove appends *value without copying it and zeroes *value.
func (s Site[T]) PushBackMove(value *T) {
	s.record(func() {
		s.v.items = append(s.v.items, *new(T))
		primitives.MoveConstruct(s.v.alloc, &s.v.items[len(s.v.items)-1], value)
	})
}

// EmplaceBack appends build() and returns a pointer to the new element.
func (s Site[T]) EmplaceBack(build func() T) *T {
	s.record(func() {
		s.v.items = append(s.v.items, *new(T))
		s.v.alloc.Construct(&s.v.items[len(s.v.items)-1], build())
	})
	return &s.v.items[len(s.v.items)-1]
}

func (s Site[T]) PopBack() {
	primitives.Require(len(s.v.items) > 0, name, "pop back on empty vector")
	s.record(func() {
		last := len(s.v.items) - 1
		s.v.alloc.Destroy(&s.v.items[last])
		s.v.items = s.v.items[:last]
	})
}

func (s Site[T]) resize(n int, fill func([]T)) {
	primitives.Require(n >= 0, name, "negative size %d", n)
	s.record(func() {
		old := len(s.v.items)
		if n < old {
			primitives.DestroyRange(s.v.alloc, s.v.items[n:])
			clear(s.v.items[n:])
			s.v.items = s.v.items[:n]
			return
		}
		s.v.items = append(s.v.items, make([]T, n-old)...)
		fill(s.v.items[old:])
	})
}

func (s Site[T]) Resize(n int) {
	s.resize(n, func(dst []T) { primitives.ZeroRange(s.v.alloc, dst) })
}

func (s Site[T]) ResizeFill(n int, value T) {
	s.resize(n, func(dst []T) { primitives.FillRange(s.v.alloc, dst, value) })
}

// replace destroys every element and rebuilds the vector with n slots filled
// by fill.
func (s Site[T]) replace(n int, fill func([]T)) {
	s.record(func() {
		primitives.DestroyRange(s.v.alloc, s.v.items)
		s.v.items = append(s.v.items[:0], make([]T, n)...)
		fill(s.v.items)
	})
}

func (s Site[T]) Assign(n int, value T) {
	primitives.Require(n >= 0, name, "negative size %d", n)
	s.replace(n, func(dst []T) { primitives.FillRange(s.v.alloc, dst, value) })
}

// AssignSlice copies values before destroying the current elements, so values
// may alias the vector's own Data.
func (s Site[T]) AssignSlice(values []T) {
	copies := make([]T, len(values))
	for i, x := range values {
		copies[i] = primitives.Copy(x)
	}
	s.replace(len(copies), func(dst []T) {
		for i := range dst {
			s.v.alloc.Construct(&dst[i], copies[i])
		}
	})
}

func (s Site[T]) AssignSeq(seq iter.Seq[T]) {
	s.AssignSlice(slices.Collect(seq))
}

// CopyFrom replaces the contents of v with copies of src's elements.
func (s Site[T]) CopyFrom(src *Vector[T]) {
	if src == s.v {
		return
	}
	s.AssignSlice(src.items)
}

// MoveFrom replaces the contents of v with src's elements, leaving src empty.
func (s Site[T]) MoveFrom(src *Vector[T]) {
	if src == s.v {
		return
	}
	s.record(func() {
		primitives.DestroyRange(s.v.alloc, s.v.items)
		s.v.items = src.items
		s.v.alloc = src.alloc
	})
	old := len(src.items)
	src.items = nil
	src.prov.Record(old, 0, s.loc)
}

// Destroy destroys every element and drops the backing array.
func (s Site[T]) Destroy() {
	s.record(func() {
		primitives.DestroyRange(s.v.alloc, s.v.items)
		s.v.items = nil
	})
}

func (s Site[T]) Swap(other *Vector[T]) {
	v := s.v
	oldThis, oldOther := len(v.items), len(other.items)
	v.items, other.items = other.items, v.items
	v.alloc, other.alloc = other.alloc, v.alloc
	v.prov.Record(oldThis, len(v.items), s.loc)
	other.prov.Record(oldOther, len(other.items), s.loc)
}
