package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/comalice/vectorx/internal/config"
	"github.com/comalice/vectorx/internal/diag"
	"github.com/comalice/vectorx/internal/report"
	"github.com/comalice/vectorx/internal/scenario"
)

// ErrMismatch is returned when a vector diverged from the reference slice.
var ErrMismatch = errors.New("vectors diverged from the reference")

const debounce = 100 * time.Millisecond

func newRunCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run <scenario|dir>...",
		Short: "Replay scenarios against every vector and compare with a slice",
		Long: `Replays each scenario (.yaml, .yml, .json, .jsonc) on a plain slice and on
bounded, fixed and hybrid vectors, then reports where a vector's offsets,
values, sizes, failures or final contents differ from the slice.

Directories are expanded to the scenario files they contain.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			if watch {
				return watchAndRun(cmd.Context(), cmd.OutOrStdout(), cfg, args)
			}
			return runOnce(cmd.Context(), cmd.OutOrStdout(), cfg, args)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run whenever a scenario file changes")
	return cmd
}

func runOnce(ctx context.Context, w io.Writer, cfg *config.Config, args []string) error {
	paths, err := expand(args)
	if err != nil {
		return err
	}
	scenarios, err := scenario.LoadAll(paths)
	if err != nil {
		return err
	}
	runner := scenario.NewRunner(cfg.InlineCapacity, cfg.FixedCapacity, diag.Logger())
	results, err := runner.RunAll(ctx, scenarios)
	if err != nil {
		return err
	}
	if err := report.Write(w, cfg.Format, results); err != nil {
		return err
	}
	if cfg.OutDir != "" {
		if err := persist(ctx, cfg, results); err != nil {
			return err
		}
	}

	failed := 0
	for _, r := range results {
		if !r.Passed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios: %w", failed, len(results), ErrMismatch)
	}
	return nil
}

func persist(ctx context.Context, cfg *config.Config, results []scenario.Result) error {
	p, err := report.NewPersister(cfg.OutDir, cfg.Format)
	if err != nil {
		return err
	}
	for _, r := range results {
		if err := p.Save(ctx, r); err != nil {
			return fmt.Errorf("persist %s: %w", r.Scenario, err)
		}
	}
	diag.Logger().Info("results persisted", "dir", cfg.OutDir, "count", len(results))
	return nil
}

// expand replaces directories with the scenario files directly inside them.
func expand(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", a, err)
		}
		if !info.IsDir() {
			out = append(out, a)
			continue
		}
		entries, err := os.ReadDir(a)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", a, err)
		}
		for _, e := range entries {
			if !e.IsDir() && scenario.IsScenarioFile(e.Name()) {
				out = append(out, filepath.Join(a, e.Name()))
			}
		}
	}
	return out, nil
}

// watchAndRun runs once, then again after every burst of writes to a watched
// scenario, until ctx is done. Directories are watched rather than files so
// editors that replace files on save are still seen.
func watchAndRun(ctx context.Context, w io.Writer, cfg *config.Config, args []string) error {
	log := diag.Logger()
	rerun := func() {
		if err := runOnce(ctx, w, cfg, args); err != nil {
			log.Error("run failed", "error", err)
		}
	}
	rerun()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	var dirs []string
	for _, a := range args {
		dir := a
		if info, err := os.Stat(a); err == nil && !info.IsDir() {
			dir = filepath.Dir(a)
		}
		if slices.Contains(dirs, dir) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs = append(dirs, dir)
	}
	log.Info("watching for changes", "dirs", dirs)

	pending := make(chan struct{}, 1)
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !scenario.IsScenarioFile(event.Name) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			log.Debug("scenario changed, re-running")
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err)
		}
	}
}
