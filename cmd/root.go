package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:              "argroute",
	Short:            "argroute - match CLI argument vectors against route patterns",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() error {
	defer func() {
		_ = logger.Sync()
	}()
	return rootCmd.Execute()
}

func init() {
	logger, _ = zap.NewProduction()

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(completeCmd)
}
