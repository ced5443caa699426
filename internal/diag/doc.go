// Package diag captures call sites and renders the out-of-bounds report used
// by the bounded vector. It also owns the module's package-level logger.
//
// Call sites are captured with runtime.Caller at the public API boundary and
// then passed explicitly; nothing here inspects the stack after the fact.
package diag
