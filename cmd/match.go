package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/argroute/argroute"
	"github.com/argroute/argroute/usage"
)

var matchCmd = &cobra.Command{
	Use:   "match <routes.yaml> [-- args...]",
	Short: "Resolve an argument vector against a route set",
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

		result, ok := router.Dispatch(args[1:])
		if !ok {
			fmt.Println("no route matched")
			fmt.Println("available routes:")
			fmt.Println(usage.RenderSet(router.Names(), router.Routes()))
			os.Exit(1)
		}

		fmt.Printf("route: %s\n", result.Name)
		fmt.Printf("pattern: %s\n", result.Pattern)

		names := make([]string, 0, len(result.Bindings))
		for name := range result.Bindings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s = %v\n", name, result.Bindings[name])
		}
	},
}
