package argroute

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/argroute/argroute/scanner"
)

// FileReport groups the per-pattern reports of one route-set file.
type FileReport struct {
	Path    string
	Reports []PatternReport
}

// BadPatterns returns how many patterns in the file had diagnostics.
func (f *FileReport) BadPatterns() int {
	n := 0
	for _, r := range f.Reports {
		if len(r.Diagnostics) > 0 {
			n++
		}
	}
	return n
}

// CheckPaths checks every route-set file reachable from the given paths. A
// directory path is scanned recursively for *.routes.yaml / *.routes.yml
// files; a file path is checked as-is. A progress bar is shown when more
// than one file is involved. Results come back sorted by path.
func CheckPaths(ctx context.Context, logger *zap.Logger, paths []string) ([]FileReport, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := scanner.New(path, scanner.DefaultSuffixes...).Scan()
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", path, err)
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	sort.Strings(files)

	var bar *progressbar.ProgressBar
	if len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("checking route sets"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	reports := make([]FileReport, 0, len(files))
	for _, file := range files {
		select {
		case <-ctx.Done():
			return reports, ctx.Err()
		default:
		}

		fileReports, err := CheckFile(file)
		if err != nil {
			if logger != nil {
				logger.Error("error checking route set", zap.String("path", file), zap.Error(err))
			}
			return reports, err
		}
		reports = append(reports, FileReport{Path: file, Reports: fileReports})

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}

	return reports, nil
}
