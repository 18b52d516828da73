package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/argroute/argroute"
	"github.com/argroute/argroute/complete"
)

var completePrefix string

var completeCmd = &cobra.Command{
	Use:   "complete <routes.yaml> [-- args...]",
	Short: "List the legal next tokens for a partial argument vector",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println("error: Please provide a route-set file")
			os.Exit(1)
		}

		router, err := argroute.LoadFile(args[0])
		if err != nil {
			logger.Error("Error loading route set", zap.String("path", args[0]), zap.Error(err))
			os.Exit(1)
		}

		for _, candidate := range complete.Candidates(router.Routes(), args[1:], completePrefix) {
			fmt.Println(candidate)
		}
	},
}

func init() {
	completeCmd.Flags().StringVarP(&completePrefix, "prefix", "p", "", "Only list candidates starting with this prefix")
}
