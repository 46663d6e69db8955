package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ctorfield.dev/pkg/ctorfield/internal/domain"
	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

var fixParallelFlag int
var fixDryRunFlag bool
var namingFlag string
var constructorFlag string

// fixCmd represents the fix command.
var fixCmd = newFixCmd()

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "fix [paths...]",
		Short:  "Introduce fields for flagged constructor parameters",
		Long:   fixLongDescription,
		PreRun: bindSharedFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := refactorOptions()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return workflowWithOptions(options).Fix(ctx, domain.FixArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(fixParallelConfigKey),
				DryRun:  viper.GetBool(fixDryRunConfigKey),
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	configureFixFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(fixCmd)
}

func configureFixFlags(cmd *cobra.Command) {
	configureParallelFlag(cmd)

	cmd.Flags().BoolVar(&fixDryRunFlag, fixDryRunFlagName, viper.GetBool(fixDryRunConfigKey), "report fixes without writing documents")
	bindFlagToConfig(cmd.Flags().Lookup(fixDryRunFlagName), fixDryRunConfigKey)

	configureRefactorFlags(cmd)
}

// configureParallelFlag adds --parallel; it is bound by bindSharedFlags.
func configureParallelFlag(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&fixParallelFlag, fixParallelFlagName, "p", viper.GetInt(fixParallelConfigKey), "number of documents processed in parallel")
}

// configureRefactorFlags adds the flags shared by fix and diff; they are
// bound by bindSharedFlags.
func configureRefactorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&namingFlag, namingFlagName, viper.GetString(namingConfigKey), "field naming policy on collisions: cumulative or sequential")
	cmd.Flags().StringVar(&constructorFlag, constructorFlagName, viper.GetString(constructorConfigKey), "constructor receiving the assignment: target or first")
}
