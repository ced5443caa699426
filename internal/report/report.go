// Package report renders scenario results and hybrid growth traces as tables,
// JSON or YAML, and persists results to a directory.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/comalice/vectorx/internal/scenario"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ValidFormat reports whether f is one of the output formats.
func ValidFormat(f string) bool {
	switch f {
	case FormatTable, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Write renders results to w in the given format.
func Write(w io.Writer, format string, results []scenario.Result) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatYAML:
		return writeYAML(w, results)
	case FormatTable, "":
		return writeTable(w, results)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

func writeTable(w io.Writer, results []scenario.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "(no scenarios)")
		return err
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Scenario", "Target", "Len", "Cap", "Storage", "Final", "Status"})
	for _, res := range results {
		for _, tr := range res.Targets {
			var last scenario.StepResult
			if n := len(tr.Steps); n > 0 {
				last = tr.Steps[n-1]
			}
			t.AppendRow(table.Row{res.Scenario, tr.Target, last.Len, last.Cap, tr.Location, formatInts(tr.Final), status(tr)})
		}
		t.AppendSeparator()
	}
	t.Render()

	for _, res := range results {
		for _, tr := range res.Targets {
			for _, m := range tr.Mismatches {
				if _, err := fmt.Fprintf(w, "%s/%s: %s\n", res.Scenario, tr.Target, m); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// newTable picks a boxed style for terminals and plain ASCII otherwise, so
// piped output stays greppable.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if isTerminal(w) {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	return t
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func status(tr scenario.TargetResult) string {
	if tr.Target == scenario.TargetSlice {
		return "reference"
	}
	if tr.Passed() {
		return "ok"
	}
	return fmt.Sprintf("%d mismatches", len(tr.Mismatches))
}

func formatInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
