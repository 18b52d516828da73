package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/argroute/argroute"
)

var initPath string

// initCmd: argroute init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter route-set file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := argroute.WriteStarterSet(initPath); err != nil {
			logger.Error("Error writing route set", zap.String("path", initPath), zap.Error(err))
			return
		}
		fmt.Printf("Route set created: %s\n", initPath)
	},
}

func init() {
	initCmd.Flags().StringVarP(&initPath, "output", "o", "example.routes.yaml", "Path of the route-set file to create")
}
