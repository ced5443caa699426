// Package vectorx is a family of dynamic arrays that share one storage and
// lifetime core.
//
// Three variants live in their own packages:
//
//   - bounded: a growable array whose every indexed access is checked and,
//     when out of range, ends the process with the call site, the most recent
//     construction site and the most recent size change.
//   - fixed: an array with a capacity chosen at construction that never grows
//     and never asks its allocator for memory.
//   - hybrid: an array that keeps its first elements inline and moves to a
//     heap buffer, obtained from its allocator, once they no longer fit.
//
// The variants do not depend on each other. Each keeps slots [0, Len()) live
// and every other slot empty, constructs and destroys elements through an
// Allocator, and copies elements through Cloner when the element type
// implements it.
//
// This package re-exports the shared types and provides Vector, the method set
// the three variants have in common, along with Slice, a plain-slice
// implementation of it used as a reference in tests and tooling.
package vectorx
