package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/argroute/argroute"
	"github.com/argroute/argroute/formatter"
	"github.com/argroute/argroute/pattern"
)

var (
	checkTimeout    time.Duration
	checkJSONOutput bool
	checkWatch      bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Validate every pattern in the given route-set files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide route-set file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		reports, err := argroute.CheckPaths(ctx, logger, args)
		if err != nil {
			logger.Error("Error checking route sets", zap.Error(err))
			os.Exit(1)
		}

		bad := printReports(reports, checkJSONOutput)

		if checkWatch {
			runWatch(args)
			return
		}

		if bad > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "Timeout for the whole check run")
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output diagnostics in JSON format")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Keep running and re-check files on change")
}

// printReports renders every file's diagnostics and returns the number of
// bad patterns across all files.
func printReports(reports []argroute.FileReport, asJSON bool) int {
	bad := 0
	for _, fr := range reports {
		bad += fr.BadPatterns()
	}

	if asJSON {
		d, err := json.Marshal(jsonReports(reports))
		if err != nil {
			logger.Error("Error marshalling reports to JSON", zap.Error(err))
			return bad
		}
		fmt.Println(string(d))
		return bad
	}

	for _, fr := range reports {
		for _, pr := range fr.Reports {
			if len(pr.Diagnostics) == 0 {
				continue
			}
			name := fr.Path
			if pr.Name != "" {
				name = fmt.Sprintf("%s (%s)", fr.Path, pr.Name)
			}
			fmt.Println(formatter.Generate(name, pr.Pattern, pr.Diagnostics))
		}
	}
	if bad == 0 {
		fmt.Printf("ok: %d route set(s), no problems found\n", len(reports))
	}
	return bad
}

// jsonReport is the flattened JSON shape of one diagnostic.
type jsonReport struct {
	File       string `json:"file"`
	Route      string `json:"route,omitempty"`
	Pattern    string `json:"pattern"`
	Position   int    `json:"position"`
	Length     int    `json:"length"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Rule       string `json:"rule,omitempty"`
}

func jsonReports(reports []argroute.FileReport) []jsonReport {
	out := make([]jsonReport, 0)
	for _, fr := range reports {
		for _, pr := range fr.Reports {
			for _, d := range pr.Diagnostics {
				position, length := d.Span()
				jr := jsonReport{
					File:       fr.Path,
					Route:      pr.Name,
					Pattern:    pr.Pattern,
					Position:   position,
					Length:     length,
					Message:    d.Error(),
					Suggestion: d.Hint(),
				}
				if sem, ok := d.(*pattern.SemanticError); ok {
					jr.Rule = sem.Code.String()
				}
				out = append(out, jr)
			}
		}
	}
	return out
}

// runWatch blocks re-checking files as they change, until interrupted.
func runWatch(paths []string) {
	watcher, err := argroute.NewWatcher(logger, func(path string, reports []argroute.PatternReport) {
		printReports([]argroute.FileReport{{Path: path, Reports: reports}}, checkJSONOutput)
	})
	if err != nil {
		logger.Error("Error creating watcher", zap.Error(err))
		os.Exit(1)
	}

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			logger.Error("Error watching path", zap.String("path", path), zap.Error(err))
			os.Exit(1)
		}
	}
	if err := watcher.Start(); err != nil {
		logger.Error("Error starting watcher", zap.Error(err))
		os.Exit(1)
	}
	defer watcher.Stop()

	fmt.Println("watching for changes, press Ctrl+C to stop")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
}
