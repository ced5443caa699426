// Package cli provides the vectorx command-line interface.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/comalice/vectorx"
	"github.com/comalice/vectorx/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

// NewRootCmd returns the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	root := &cobra.Command{
		Use:   "vectorx",
		Short: "Exercise bounded, fixed and hybrid vectors",
		Long: `vectorx replays operation scenarios against three vector variants and a
plain slice, traces hybrid storage growth, and demonstrates the bounded
vector's out-of-bounds report.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level, _ := cfg.Level()
			logger := newLogger(cmd.ErrOrStderr(), level)
			vectorx.SetLogger(logger)
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./vectorx.yaml)")
	flags.StringP("format", "f", config.DefaultFormat, "output format (table|json|yaml)")
	flags.Int("inline-capacity", config.DefaultInlineCapacity, "hybrid inline capacity")
	flags.Int("fixed-capacity", config.DefaultFixedCapacity, "fixed vector capacity")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	flags.String("out-dir", "", "directory to persist results in")

	_ = root.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newRunCmd(), newGrowthCmd(), newCrashCmd())
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).With("component", "vectorx")
}

func configFrom(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Format:         config.DefaultFormat,
		InlineCapacity: config.DefaultInlineCapacity,
		FixedCapacity:  config.DefaultFixedCapacity,
		LogLevel:       config.DefaultLogLevel,
	}
}
