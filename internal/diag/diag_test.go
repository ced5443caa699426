package diag

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaller(t *testing.T) {
	loc := Caller(0)
	assert.True(t, strings.HasSuffix(loc.File, "diag_test.go"), loc.File)
	assert.Positive(t, loc.Line)
	assert.Equal(t, "diag.TestCaller", loc.Function)
	assert.False(t, loc.IsZero())
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"file and line", Location{File: "main.go", Line: 12}, "main.go:12"},
		{"column", Location{File: "main.go", Line: 12, Column: 3}, "main.go:12:3"},
		{"function", Location{File: "main.go", Line: 12, Function: "main.main"}, "main.go:12 `main.main`"},
		{"label", Location{File: "main.go", Line: 1, Label: "v2"}, "main.go:1 [v2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.String())
		})
	}
}

func TestShortFuncName(t *testing.T) {
	assert.Equal(t, "bounded.(*Vector[...]).Get", shortFuncName("github.com/comalice/vectorx/bounded.(*Vector[...]).Get"))
	assert.Equal(t, "main.main", shortFuncName("main.main"))
}

func TestProvenance(t *testing.T) {
	var p Provenance
	p.Construct(Location{File: "a.go", Line: 1})
	assert.False(t, p.Changed)

	p.Record(3, 4, Location{File: "a.go", Line: 2})
	assert.True(t, p.Changed)
	assert.Equal(t, SizeChange{Old: 3, New: 4, At: Location{File: "a.go", Line: 2}}, p.LastChange)

	p.Construct(Location{File: "a.go", Line: 3})
	assert.False(t, p.Changed, "construction starts a fresh history")
	assert.Equal(t, SizeChange{}, p.LastChange)
}

func TestFatalErrorReport(t *testing.T) {
	e := &FatalError{
		Index: 3,
		Size:  3,
		Site:  Location{File: "main.go", Line: 16, Function: "main.test"},
	}
	e.Provenance.Construct(Location{File: "main.go", Line: 7})

	assert.Equal(t, "main.go:16 `main.test`: index out of bounds; 3 for a vector of size 3", e.Error())
	assert.Contains(t, e.Report(), "Help: the vector was most recently constructed at main.go:7\n")
	assert.Contains(t, e.Report(), "Note: the vector has no recorded size changes after its most recent construction\n")

	e.Provenance.Record(4, 3, Location{File: "main.go", Line: 14})
	lines := strings.Split(strings.TrimSuffix(e.Report(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Help: the vector's most recent size change was from 4 to 3 at main.go:14", lines[2])
}

func TestReporterFail(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	var out bytes.Buffer
	code := -1
	r := Reporter{Out: &out, Exit: func(c int) { code = c }}
	e := &FatalError{Index: -1, Size: 0, Site: Location{File: "x.go", Line: 9}}

	assert.PanicsWithValue(t, e, func() { r.Fail(e) })
	assert.Equal(t, ExitCode, code)
	assert.Equal(t, e.Report(), out.String())
	assert.Contains(t, logs.String(), "vector index out of bounds")
	assert.Contains(t, logs.String(), "index=-1")
}

func TestLogger(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	require.NotNil(t, l)
	assert.Same(t, l, Logger(), "default is cached")

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)
	assert.Same(t, custom, Logger())
	SetLogger(nil)
	assert.NotSame(t, custom, Logger())
}
