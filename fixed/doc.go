// Package fixed provides Vector, a dynamic array whose capacity is chosen once
// at construction and never changes.
//
// The slot buffer is made together with the vector; the allocator is only
// asked to construct, destroy and relocate elements, never to allocate. Going
// past the capacity is a programmer error and panics with a precondition
// error instead of growing.
//
// Swap is deliberately unsupported: exchanging two inline buffers cannot be a
// pointer swap, and a linear element-wise swap is not offered in its place.
package fixed
