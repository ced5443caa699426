package diag

import (
	"fmt"
	"runtime"
	"strings"
)

// Location identifies the call site of a container operation. Column is zero
// when unknown; the Go runtime does not report columns.
type Location struct {
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column,omitempty" yaml:"column,omitempty"`
	Function string `json:"function,omitempty" yaml:"function,omitempty"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Caller returns the location skip frames above its own caller, so Caller(0)
// is the function that called Caller.
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{File: "???"}
	}
	loc := Location{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = shortFuncName(fn.Name())
	}
	return loc
}

// IsZero reports whether l was never set.
func (l Location) IsZero() bool {
	return l == Location{}
}

// String renders "file:line[:column] `function`" followed by " [label]" when
// labelled. The file:line prefix is what editors turn into a link.
func (l Location) String() string {
	var b strings.Builder
	b.WriteString(l.File)
	fmt.Fprintf(&b, ":%d", l.Line)
	if l.Column > 0 {
		fmt.Fprintf(&b, ":%d", l.Column)
	}
	if l.Function != "" {
		fmt.Fprintf(&b, " `%s`", l.Function)
	}
	if l.Label != "" {
		fmt.Fprintf(&b, " [%s]", l.Label)
	}
	return b.String()
}

// shortFuncName trims the import path but keeps the package qualifier:
// "github.com/x/y/pkg.(*T).M" becomes "pkg.(*T).M".
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}
