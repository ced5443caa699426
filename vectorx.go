package vectorx

import (
	"iter"
	"log/slog"

	"github.com/comalice/vectorx/internal/diag"
	"github.com/comalice/vectorx/internal/primitives"
)

type (
	// Allocator obtains and releases slot buffers and constructs, destroys
	// and relocates single elements.
	Allocator[T any] = primitives.Allocator[T]
	// HeapAllocator is the default Allocator, backed by the Go heap.
	HeapAllocator[T any] = primitives.HeapAllocator[T]
	// Cloner is implemented by element types with their own copy semantics.
	Cloner[T any] = primitives.Cloner[T]
	// Releaser is implemented by element types that hold resources to free
	// when an element is destroyed.
	Releaser = primitives.Releaser
	// RangeError is returned by At for an index outside [0, Len()).
	RangeError = primitives.RangeError
	// PreconditionError is the panic value of a violated precondition.
	PreconditionError = primitives.PreconditionError
)

var (
	ErrOutOfRange   = primitives.ErrOutOfRange
	ErrPrecondition = primitives.ErrPrecondition
	ErrUnsupported  = primitives.ErrUnsupported
)

// NewHeapAllocator returns the default allocator for T.
func NewHeapAllocator[T any]() Allocator[T] {
	return primitives.NewHeapAllocator[T]()
}

// Render lists the values of seq as {e0, e1, ...}.
func Render[T any](seq iter.Seq[T]) string {
	return primitives.Render(seq)
}

// SetLogger replaces the logger used by all vector packages. A nil l restores
// the default derived from slog.Default.
func SetLogger(l *slog.Logger) {
	diag.SetLogger(l)
}

// Vector is the method set shared by bounded, fixed and hybrid vectors.
type Vector[T any] interface {
	Len() int
	Cap() int
	MaxSize() int
	Empty() bool
	Data() []T
	Get(i int) T
	Ref(i int) *T
	Set(i int, value T)
	At(i int) (T, error)
	Front() T
	Back() T
	All() iter.Seq2[int, T]
	Values() iter.Seq[T]
	Backward() iter.Seq2[int, T]
	PushBack(value T)
	PushBackMove(value *T)
	EmplaceBack(build func() T) *T
	PopBack()
	Insert(pos int, value T) int
	InsertMove(pos int, value *T) int
	InsertN(pos, n int, value T) int
	InsertSlice(pos int, values []T) int
	InsertSeq(pos int, seq iter.Seq[T]) int
	Erase(pos int) int
	EraseRange(first, last int) int
	Resize(n int)
	ResizeFill(n int, value T)
	Clear()
	Destroy()
	String() string
}
