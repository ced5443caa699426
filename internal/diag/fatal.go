package diag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ExitCode is the process status used after an out-of-bounds report; it is
// what exit(-1) becomes on POSIX systems.
const ExitCode = 255

// FatalError describes an out-of-bounds access together with the provenance
// of the vector it hit.
type FatalError struct {
	Index      int
	Size       int
	Site       Location
	Provenance Provenance
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: index out of bounds; %d for a vector of size %d", e.Site, e.Index, e.Size)
}

// Report renders the full multi-line diagnostic.
func (e *FatalError) Report() string {
	var b strings.Builder
	b.WriteString(e.Error())
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Help: the vector was most recently constructed at %s\n", e.Provenance.Constructed)
	if e.Provenance.Changed {
		c := e.Provenance.LastChange
		fmt.Fprintf(&b, "Help: the vector's most recent size change was from %d to %d at %s\n", c.Old, c.New, c.At)
		b.WriteString("This does not include writes made through Data or Ref, which never change the size.\n")
	} else {
		b.WriteString("Note: the vector has no recorded size changes after its most recent construction\n")
	}
	return b.String()
}

// Reporter is where a fatal access goes: the report is written to Out and the
// process is ended through Exit.
type Reporter struct {
	Out  io.Writer
	Exit func(code int)
}

// DefaultReporter writes to stderr and calls os.Exit.
func DefaultReporter() Reporter {
	return Reporter{Out: os.Stderr, Exit: os.Exit}
}

// Fail never returns. If Exit returns (test hooks do), Fail panics with e.
func (r Reporter) Fail(e *FatalError) {
	Logger().LogAttrs(context.Background(), slog.LevelError, "vector index out of bounds",
		slog.Int("index", e.Index),
		slog.Int("size", e.Size),
		slog.String("site", e.Site.String()),
		slog.String("constructed", e.Provenance.Constructed.String()),
	)
	out := r.Out
	if out == nil {
		out = os.Stderr
	}
	_, _ = io.WriteString(out, e.Report())
	exit := r.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(ExitCode)
	panic(e)
}
