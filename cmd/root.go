// Package cmd provides the root command and CLI setup for ctorfield.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ctorfield.dev/pkg/ctorfield/internal/adapter"
	"ctorfield.dev/pkg/ctorfield/internal/controller"
	"ctorfield.dev/pkg/ctorfield/internal/domain"
	"ctorfield.dev/pkg/ctorfield/internal/domain/refactor"
	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var documents adapter.DocumentAdapter
var reportStore adapter.ReportStore
var analyzer domain.Analyzer
var workflow domain.Workflow
var ui controller.UI

// workflowWithOptions builds a workflow whose orchestrator uses the given
// refactoring options. Replaced in tests.
var workflowWithOptions = func(options refactor.Options) domain.Workflow {
	return domain.NewWorkflow(
		fsAdapter,
		documents,
		reportStore,
		ui,
		domain.NewOrchestrator(documents, options),
		analyzer,
	)
}

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// verboseFlag switches the log file to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	cache, err := adapter.NewTreeCache(viper.GetInt(cacheSizeConfigKey))
	cobra.CheckErr(err)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	documents = adapter.NewDocumentAdapter(fsAdapter, cache)
	reportStore = adapter.NewReportStore(fsAdapter)
	analyzer = domain.NewAnalyzer()
	workflow = workflowWithOptions(refactor.Options{})
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./a ./b        scan multiple directories

Java sources (.java) and syntax tree documents (.yaml, .yml) are processed.`

const rootLongDescription = `ctorfield finds constructor parameters that are never stored and
introduces a private read-only field for each of them, assigning the
parameter at the end of the constructor body.

` + pathPatternsHelp

const fixLongDescription = `Introduce fields for every flagged constructor parameter under the given
paths (default: current directory) and write the changed documents back.

` + pathPatternsHelp

const listLongDescription = `List constructor parameters that can be stored in a field.

` + pathPatternsHelp

const diffLongDescription = `Show the changes fix would make as unified diffs, without writing.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "ctorfield",
		Short:        "Introduce fields from constructor parameters",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for fix run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "write debug logs")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// sharedFlags maps flags defined by several commands to their config keys.
// A viper key follows the last flag bound to it, so they are bound when the
// command runs.
var sharedFlags = map[string]string{
	fixParallelFlagName: fixParallelConfigKey,
	namingFlagName:      namingConfigKey,
	constructorFlagName: constructorConfigKey,
}

func bindSharedFlags(cmd *cobra.Command, _ []string) {
	for name, key := range sharedFlags {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			bindFlagToConfig(flag, key)
		}
	}
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

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// refactorOptions reads the naming policy and constructor selection from config.
func refactorOptions() (refactor.Options, error) {
	naming, err := refactor.ParseNamingPolicy(viper.GetString(namingConfigKey))
	if err != nil {
		return refactor.Options{}, err
	}

	selection, err := refactor.ParseConstructorSelection(viper.GetString(constructorConfigKey))
	if err != nil {
		return refactor.Options{}, err
	}

	return refactor.Options{Naming: naming, Selection: selection}, nil
}
