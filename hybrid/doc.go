// Package hybrid provides Vector, a dynamic array that keeps its first
// elements in an inline buffer and only asks its allocator for a heap buffer
// once that buffer overflows.
//
// A Vector is always in one of two states:
//
//	Inline  elements live in the inline buffer; no heap buffer is held
//	Heap    elements live in an allocator-owned buffer; Cap() is its length
//
// Inline becomes Heap through Reserve, which every growing operation calls
// with a doubled capacity. Heap returns to Inline only through ShrinkToFit,
// and only when the elements fit the inline buffer again. Reallocation
// invalidates pointers obtained from Ref, Data and EmplaceBack.
//
// Moving a Heap vector hands its buffer over; moving an Inline vector
// relocates element by element, since the inline buffer belongs to the
// vector. Swap is deliberately unsupported for the same reason.
package hybrid
