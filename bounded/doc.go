// Package bounded provides Vector, a growable array whose indexed accesses
// are checked and whose size history is recorded.
//
// Get, Ref, Set, Front and Back never read past the live elements. An
// out-of-range index writes a report to the vector's error stream and ends
// the process. The report names:
//
//  1. the offending index and the call site of the access,
//  2. the call site of the vector's most recent construction, and
//  3. the call site of its most recent size change, with the size before and
//     after it.
//
// This is a debugging aid: the failure is deliberately not recoverable. Use At
// when a recoverable error is wanted instead.
//
// Every public method captures its caller with runtime.Caller. Wrappers that
// want reports to name their own caller pass a location explicitly:
//
//	func push(v *bounded.Vector[int], x int) {
//		v.Site(bounded.Here(1)).PushBack(x)
//	}
//
// Growth, ordering and iteration are those of a Go slice. A Vector is not safe
// for concurrent use.
package bounded
