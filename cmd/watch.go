package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"revisit.dev/pkg/revisit/internal/controller"
	m "revisit.dev/pkg/revisit/internal/model"
	"revisit.dev/pkg/revisit/internal/report"
	"revisit.dev/pkg/revisit/internal/runner"
	"revisit.dev/pkg/revisit/internal/watch"
	pkg "revisit.dev/pkg/revisit/pkg"
)

var watchIntervalFlag time.Duration
var watchModeFlag string
var watchMaxRunsFlag int
var watchPatternFlag string

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-run the suite whenever the directory changes",
		Long: `Poll the suite directory at a fixed interval, fingerprint its files, and
re-run the whole suite whenever the fingerprints change. Polling is
deliberately coarse (seconds, not milliseconds).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := controller.IsTTY(os.Stdout)
			ui := controller.NewUI(cmd, interactive)

			return watchSession(cmd, suiteDir(args), ui, interactive)
		},
	}

	configureWatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func configureWatchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVarP(&watchIntervalFlag, intervalFlagName, "i", viper.GetDuration(intervalConfigKey), "poll interval (floor 1s)")
	bindFlagToConfig(cmd.Flags().Lookup(intervalFlagName), intervalConfigKey)

	cmd.Flags().StringVarP(&watchModeFlag, modeFlagName, "m", viper.GetString(modeConfigKey), "fingerprint mode: hash or mtime")
	bindFlagToConfig(cmd.Flags().Lookup(modeFlagName), modeConfigKey)

	cmd.Flags().IntVarP(&watchMaxRunsFlag, maxRunsFlagName, "n", viper.GetInt(maxRunsConfigKey), "stop after this many re-runs (0 = keep watching)")
	bindFlagToConfig(cmd.Flags().Lookup(maxRunsFlagName), maxRunsConfigKey)

	cmd.Flags().StringVarP(&watchPatternFlag, patternFlagName, "p", viper.GetString(patternConfigKey), "only fingerprint files whose name matches this regex")
	bindFlagToConfig(cmd.Flags().Lookup(patternFlagName), patternConfigKey)
}

//nolint:funlen // Session wiring reads best in one place.
func watchSession(cmd *cobra.Command, dir m.Path, ui controller.UI, interactive bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	filter, err := nameFilter()
	if err != nil {
		return err
	}

	watchFilter, err := watchPattern()
	if err != nil {
		return err
	}

	interval := viper.GetDuration(intervalConfigKey)
	if interval < minInterval {
		interval = minInterval
	}

	mode := watch.ParseMode(viper.GetString(modeConfigKey))
	maxRuns := viper.GetInt(maxRunsConfigKey)
	roots := []m.Path{dir}
	watcher := watch.NewWatcher(fsAdapter, roots, watchFilter, mode, interval)

	history, err := pkg.NewSpill[m.RunSummary]()
	if err != nil {
		return err
	}

	defer func() {
		_ = history.Close()
	}()

	// In interactive mode the TUI owns the terminal; stream output would
	// fight it, so runs report through the collector only.
	runOut := cmd.OutOrStdout()
	if interactive {
		runOut = io.Discard
	}

	if err := ui.Start(ctx); err != nil {
		return err
	}

	runs := 0

	callback := func(added, deleted, modified []m.Path) bool {
		ui.DisplayChanges(ctx, watch.ChangeSet{
			Count:    len(added) + len(deleted) + len(modified),
			Added:    added,
			Deleted:  deleted,
			Modified: modified,
		})

		summary, runErr := runOnce(runOut, dir, filter)
		ui.DisplayRunCompleted(ctx, summary, runErr)

		if runErr == nil {
			if err := history.Append(summary); err != nil {
				ui.DisplayRunCompleted(ctx, summary, err)
			}
		}

		runs++

		return maxRuns == 0 || runs < maxRuns
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer ui.Close(context.Background())

		ui.DisplayWatchStarted(gctx, roots, interval)

		err := watcher.Run(gctx, callback)
		if errors.Is(err, context.Canceled) {
			return nil
		}

		return err
	})

	if interactive {
		// Quitting the TUI ends the watch session.
		group.Go(func() error {
			ui.Wait(gctx)
			stop()

			return nil
		})
	}

	err = group.Wait()

	totalRuns, redRuns := tallyHistory(history)
	ui.DisplaySessionSummary(context.Background(), totalRuns, redRuns)

	return err
}

// runOnce executes one full suite run and returns its tally.
func runOnce(out io.Writer, dir m.Path, filter runner.NameFilter) (m.RunSummary, error) {
	collector := report.NewCollector()

	rep, err := buildReporter(viper.GetString(reporterConfigKey), out, collector)
	if err != nil {
		return m.RunSummary{}, err
	}

	c := runner.NewController(rep)
	if err := runner.RunSuite(loader, c, dir, filter); err != nil {
		return m.RunSummary{}, err
	}

	log := collector.Log()
	if err := reportStore.SaveRunLog(m.Path(viper.GetString(outputFlagName)), log); err != nil {
		return m.RunSummary{}, err
	}

	return log.Summary(), nil
}

func watchPattern() (watch.Filter, error) {
	expr := viper.GetString(patternConfigKey)
	if expr == "" {
		return nil, nil
	}

	re, err := compilePattern(expr)
	if err != nil {
		return nil, err
	}

	return func(name string) bool { return re.MatchString(name) }, nil
}

func tallyHistory(history pkg.Spill[m.RunSummary]) (runs, redRuns int) {
	_ = history.Range(func(_ uint64, s m.RunSummary) error {
		runs++
		if !s.Green() {
			redRuns++
		}

		return nil
	})

	return runs, redRuns
}
