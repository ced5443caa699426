package primitives

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("index out of range")
	// ErrPrecondition is matched by every *PreconditionError.
	ErrPrecondition = errors.New("precondition violated")
	// ErrUnsupported marks operations a container deliberately does not implement.
	ErrUnsupported = errors.New("operation not supported")
)

// RangeError is the recoverable error returned by checked access.
type RangeError struct {
	Container string
	Index     int
	Size      int
}

func (e *RangeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: index (%d) < 0 (size %d)", e.Container, e.Index, e.Size)
	}
	return fmt.Sprintf("%s: index (%d) >= size (%d)", e.Container, e.Index, e.Size)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// CheckIndex returns a *RangeError unless 0 <= i < size.
func CheckIndex(container string, i, size int) error {
	if i < 0 || i >= size {
		return &RangeError{Container: container, Index: i, Size: size}
	}
	return nil
}

// PreconditionError is the panic value for a violated container precondition.
// These are programmer errors; callers are not expected to recover from them.
type PreconditionError struct {
	Container string
	Msg       string
}

func (e *PreconditionError) Error() string {
	return e.Container + ": " + e.Msg
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// Require panics with a *PreconditionError when cond is false.
func Require(cond bool, container, format string, args ...any) {
	if cond {
		return
	}
	panic(&PreconditionError{Container: container, Msg: fmt.Sprintf(format, args...)})
}

// Unsupported builds the panic value for an operation a container refuses.
func Unsupported(container, op string) error {
	return fmt.Errorf("%s: %s: %w", container, op, ErrUnsupported)
}
