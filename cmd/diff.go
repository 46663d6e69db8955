package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ctorfield.dev/pkg/ctorfield/internal/domain"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "diff [paths...]",
		Short:  "Preview fixes as unified diffs",
		Long:   diffLongDescription,
		PreRun: bindSharedFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := refactorOptions()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return workflowWithOptions(options).Diff(ctx, domain.DiffArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(fixParallelConfigKey),
			})
		},
	}

	configureParallelFlag(cmd)
	configureRefactorFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
