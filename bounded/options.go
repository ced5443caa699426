package bounded

import (
	"io"

	"github.com/comalice/vectorx/internal/diag"
	"github.com/comalice/vectorx/internal/primitives"
)

// Option configures a Vector at construction.
type Option func(*options)

type options struct {
	alloc    any
	reporter diag.Reporter
	loc      *Location
	label    string
}

// WithAllocator sets the allocator used to construct and destroy elements.
// The allocator's element type must match the vector's; New panics otherwise.
func WithAllocator[T any](a primitives.Allocator[T]) Option {
	if a == nil {
		panic("bounded: allocator must not be nil")
	}
	return func(o *options) {
		o.alloc = a
	}
}

// WithErrorStream sets where out-of-bounds reports are written.
// Default: os.Stderr.
func WithErrorStream(w io.Writer) Option {
	if w == nil {
		panic("bounded: error stream must not be nil")
	}
	return func(o *options) {
		o.reporter.Out = w
	}
}

// WithExitFunc replaces os.Exit on the out-of-bounds path. If f returns, the
// access panics with a *FatalError instead of returning.
func WithExitFunc(f func(code int)) Option {
	if f == nil {
		panic("bounded: exit func must not be nil")
	}
	return func(o *options) {
		o.reporter.Exit = f
	}
}

// WithLocation records loc as the construction site instead of the caller of
// the constructor.
func WithLocation(loc Location) Option {
	return func(o *options) {
		o.loc = &loc
	}
}

// WithLabel tags the construction site, so reports read "... [label]".
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

func buildOptions[T any](caller Location, opts []Option) (primitives.Allocator[T], diag.Reporter, Location) {
	o := options{reporter: diag.DefaultReporter()}
	for _, opt := range opts {
		opt(&o)
	}
	alloc := primitives.NewHeapAllocator[T]()
	if o.alloc != nil {
		a, ok := o.alloc.(primitives.Allocator[T])
		if !ok {
			panic("bounded: allocator element type does not match the vector's")
		}
		alloc = a
	}
	loc := caller
	if o.loc != nil {
		loc = *o.loc
	}
	if o.label != "" {
		loc.Label = o.label
	}
	return alloc, o.reporter, loc
}
