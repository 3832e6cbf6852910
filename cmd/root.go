// Package cmd provides the root command and CLI setup for revisit.
package cmd

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"revisit.dev/pkg/revisit/internal/adapter"
	m "revisit.dev/pkg/revisit/internal/model"
	"revisit.dev/pkg/revisit/internal/report"
	"revisit.dev/pkg/revisit/internal/runner"
)

var fsAdapter adapter.SuiteFSAdapter
var suiteRegistry *runner.Registry
var loader *runner.Loader
var reportStore report.Store

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// filterFlag narrows which test files load (regex over the name with the
// "test" prefix and extension stripped).
var filterFlag string

// reporterFlag selects the reporter by short name.
var reporterFlag string

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSuiteFSAdapter()
	suiteRegistry = runner.NewRegistry()
	loader = runner.NewLoader(fsAdapter, suiteRegistry)
	reportStore = report.NewStore()
}

const rootLongDescription = `Revisit is a test-execution engine: it loads suite files from a directory,
runs their checks inside isolated scopes, and streams every expectation
result to one or more reporters. The watch command keeps re-running the
suite whenever the directory tree changes.

Suite files follow a naming convention: helper files ("helper*.go") load
first, then test files ("test*.go"), both in alphabetical order. Bodies for
the files are registered with the suite registry by the embedding program.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revisit",
		Short: "Continuous test-execution engine",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&filterFlag, filterFlagName, "f", viper.GetString(filterConfigKey), "only load test files whose stripped name matches this regex")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(filterFlagName), filterConfigKey)

	cmd.PersistentFlags().StringVarP(&reporterFlag, reporterFlagName, "r", viper.GetString(reporterConfigKey), "reporter to stream results to (console, quiet)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(reporterFlagName), reporterConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// SuiteRegistry exposes the registry suite bodies are registered with, so
// an embedding program can bind bodies to its suite files before Execute.
func SuiteRegistry() *runner.Registry {
	return suiteRegistry
}

// suiteDir resolves the optional positional directory argument.
func suiteDir(args []string) m.Path {
	if len(args) > 0 {
		return m.Path(args[0])
	}

	return m.Path(".")
}

// nameFilter builds the test-file filter from config; an empty value
// matches everything.
func nameFilter() (runner.NameFilter, error) {
	expr := viper.GetString(filterConfigKey)
	if expr == "" {
		return nil, nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("bad %s regex %q: %w", filterFlagName, expr, err)
	}

	return func(name string) bool { return re.MatchString(name) }, nil
}

// compilePattern compiles a watch filename pattern with a friendlier error.
func compilePattern(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("bad %s regex %q: %w", patternFlagName, expr, err)
	}

	return re, nil
}
