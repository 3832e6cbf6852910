package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "revisit.dev/pkg/revisit/internal/model"
	"revisit.dev/pkg/revisit/internal/report"
	"revisit.dev/pkg/revisit/internal/runner"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [dir]",
		Short: "Run the suite once",
		Long:  "Load the suite files of a directory (default: current directory), run every check, and save the run report.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := nameFilter()
			if err != nil {
				return err
			}

			collector := report.NewCollector()

			rep, err := buildReporter(viper.GetString(reporterConfigKey), cmd.OutOrStdout(), collector)
			if err != nil {
				return err
			}

			c := runner.NewController(rep)
			if err := runner.RunSuite(loader, c, suiteDir(args), filter); err != nil {
				return err
			}

			reportsDir := m.Path(viper.GetString(outputFlagName))
			if err := reportStore.SaveRunLog(reportsDir, collector.Log()); err != nil {
				return err
			}

			runLog := collector.Log()
			if summary := runLog.Summary(); !summary.Green() {
				return fmt.Errorf("suite red: %d failed, %d errors", summary.Failed, summary.Errors)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// buildReporter resolves a reporter short name to an instance. The
// collector always rides along so the run log can be exported.
func buildReporter(name string, out io.Writer, collector *report.Collector) (report.Reporter, error) {
	switch name {
	case "console":
		return report.NewMultiReporter(report.NewConsoleReporter(out), collector), nil
	case "quiet":
		return report.NewMultiReporter(collector), nil
	}

	return nil, fmt.Errorf("unknown reporter %q", name)
}
