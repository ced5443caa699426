package report

import (
	"bytes"
	"fmt"
	"io"
)

// WriteGrowthDOT renders a growth trace as Graphviz DOT source. Rows are
// grouped into one cluster per storage location and chained in step order;
// edges that cross storage are highlighted.
func WriteGrowthDOT(w io.Writer, rows []GrowthRow) error {
	var buf bytes.Buffer
	buf.WriteString(`digraph Growth {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)
	for _, loc := range locations(rows) {
		renderCluster(&buf, loc, rows)
	}
	for i := 1; i < len(rows); i++ {
		from, to := rows[i-1], rows[i]
		style := ""
		if from.Location != to.Location {
			style = " color=red penwidth=2"
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q%s];\n", nodeID(from), nodeID(to), to.Op, style)
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// locations returns the distinct storage locations in order of appearance.
func locations(rows []GrowthRow) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range rows {
		if !seen[r.Location] {
			seen[r.Location] = true
			out = append(out, r.Location)
		}
	}
	return out
}

func renderCluster(buf *bytes.Buffer, loc string, rows []GrowthRow) {
	fmt.Fprintf(buf, "  subgraph cluster_%s {\n", loc)
	fill := "lightgreen"
	if loc == "heap" {
		fill = "lightblue"
	}
	fmt.Fprintf(buf, "    label=%q;\n    style=filled; fillcolor=%s;\n", loc, fill)
	for _, r := range rows {
		if r.Location == loc {
			fmt.Fprintf(buf, "    %q [label=\"%s\\nlen %d / cap %d\"];\n", nodeID(r), r.Op, r.Len, r.Cap)
		}
	}
	buf.WriteString("  }\n")
}

func nodeID(r GrowthRow) string {
	return fmt.Sprintf("step%d", r.Step)
}
