package hybrid

// Location tells where a vector's elements currently live.
type Location uint8

const (
	Inline Location = iota
	Heap
)

func (l Location) String() string {
	switch l {
	case Inline:
		return "inline"
	case Heap:
		return "heap"
	default:
		return "unknown"
	}
}

// storage is a tagged choice between the inline buffer and a heap buffer.
// heap is non-nil iff loc == Heap; the inline buffer is kept either way but
// holds no live slot while loc == Heap.
type storage[T any] struct {
	loc    Location
	inline []T
	heap   []T
}

func (s *storage[T]) active() []T {
	if s.loc == Heap {
		return s.heap
	}
	return s.inline
}

func (s *storage[T]) capacity() int {
	return len(s.active())
}

// adopt installs buf as the heap buffer and returns the one it replaces, if
// any.
func (s *storage[T]) adopt(buf []T) (old []T) {
	old = s.heap
	s.heap = buf
	s.loc = Heap
	return old
}

// demote drops the heap buffer and returns it.
func (s *storage[T]) demote() (old []T) {
	old = s.heap
	s.heap = nil
	s.loc = Inline
	return old
}
