// Package primitives provides the storage-and-lifetime core shared by the
// vector variants in this module.
//
// This package uses ONLY the Go standard library. The container packages
// (bounded, fixed, hybrid) build on it and inherit the same rule.
//
// Core invariants:
//   - A buffer slot is live iff its index is in [0, size); every other slot
//     holds the zero value.
//   - A slot becomes live only through Allocator.Construct or Allocator.Relocate,
//     and stops being live only through Allocator.Destroy or by being the source
//     of a Relocate.
//   - A relocation is neither a construction nor a destruction, so each logical
//     element is constructed once and destroyed once no matter how often the
//     container moves it.
package primitives
