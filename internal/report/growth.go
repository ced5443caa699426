package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// GrowthRow is one observation of a hybrid vector's storage.
type GrowthRow struct {
	Step     int    `json:"step" yaml:"step"`
	Op       string `json:"op" yaml:"op"`
	Len      int    `json:"len" yaml:"len"`
	Cap      int    `json:"cap" yaml:"cap"`
	Location string `json:"location" yaml:"location"`
}

// WriteGrowth renders a growth trace in the given format.
func WriteGrowth(w io.Writer, format string, rows []GrowthRow) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatYAML:
		return writeYAML(w, rows)
	case FormatTable, "":
		t := newTable(w)
		t.AppendHeader(table.Row{"Step", "Op", "Len", "Cap", "Storage"})
		for _, r := range rows {
			t.AppendRow(table.Row{r.Step, r.Op, r.Len, r.Cap, r.Location})
		}
		t.Render()
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
