package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ctorfield.dev/pkg/ctorfield/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "list [paths...]",
		Short:  "List constructor parameters that can become fields",
		Long:   listLongDescription,
		PreRun: bindSharedFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(fixParallelConfigKey),
			})
		},
	}

	configureParallelFlag(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
