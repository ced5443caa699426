package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/vectorx/bounded"
)

func newCrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crash",
		Short: "Trigger a bounded vector's out-of-bounds report",
		Long: `Builds two bounded vectors, grows one, swaps them and then reads past the
end of the shrunk one. The report names the access, the construction and the
swap, and the process exits with status 255.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crashDemo(cmd, bounded.WithErrorStream(cmd.ErrOrStderr()))
			return nil
		},
	}
}

// crashDemo does not return unless opts replace the exit func.
func crashDemo(cmd *cobra.Command, opts ...bounded.Option) {
	v := bounded.New[int](opts...)
	v.AssignSlice([]int{1, 2, 3})
	v2 := bounded.NewFromSeq(v.Values(), opts...)
	fmt.Fprintf(cmd.OutOrStdout(), "v: %s\nv2: %s\n", v, v2)

	v2.PushBack(4)
	_ = v2.Get(3)
	bounded.Swap(v, v2)
	_ = v2.Get(3)
}
