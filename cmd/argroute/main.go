package main

import (
	"os"

	"github.com/argroute/argroute/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
