package primitives

import (
	"fmt"
	"iter"
	"strings"
)

// Render lists the values of seq as {e0, e1, ...}. It is meant for
// diagnostics and tests, not as a stable serialization format.
func Render[T any](seq iter.Seq[T]) string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for v := range seq {
		if !first {
			b.WriteString(", ")
		}
		fmt.Fprint(&b, v)
		first = false
	}
	b.WriteByte('}')
	return b.String()
}
