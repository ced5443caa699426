package cli

import (
	"github.com/spf13/cobra"

	"github.com/comalice/vectorx/hybrid"
	"github.com/comalice/vectorx/internal/report"
)

func newGrowthCmd() *cobra.Command {
	var (
		count int
		dot   bool
	)
	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Trace a hybrid vector moving from inline to heap storage and back",
		Long: `Pushes --count elements onto a hybrid vector with the configured inline
capacity, recording every change of capacity or storage location, then pops
back down to the inline capacity and shrinks to fit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())
			rows := growthTrace(cfg.InlineCapacity, count)
			if dot {
				return report.WriteGrowthDOT(cmd.OutOrStdout(), rows)
			}
			return report.WriteGrowth(cmd.OutOrStdout(), cfg.Format, rows)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 100, "number of elements to push")
	cmd.Flags().BoolVar(&dot, "dot", false, "write the trace as Graphviz DOT instead of --format")
	return cmd
}

// growthTrace records the state after construction, after every push that
// changed the capacity, and after each step of the way back.
func growthTrace(inline, count int) []report.GrowthRow {
	v := hybrid.New[int](inline)
	defer v.Destroy()

	step := 0
	rows := []report.GrowthRow{row(v, step, "new")}
	for i := range count {
		before := v.Cap()
		v.PushBack(i)
		step++
		if v.Cap() != before {
			rows = append(rows, row(v, step, "push_back"))
		}
	}
	for v.Len() > inline {
		v.PopBack()
		step++
	}
	rows = append(rows, row(v, step, "pop_back"))
	v.ShrinkToFit()
	step++
	rows = append(rows, row(v, step, "shrink_to_fit"))
	return rows
}

func row(v *hybrid.Vector[int], step int, op string) report.GrowthRow {
	return report.GrowthRow{Step: step, Op: op, Len: v.Len(), Cap: v.Cap(), Location: v.Location().String()}
}
