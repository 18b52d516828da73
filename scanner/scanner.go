// Package scanner discovers route-set files under a directory tree.
package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// RouteFile describes one discovered route-set file.
type RouteFile struct {
	Path string
	Size int64
}

// Scanner walks a directory tree collecting files whose names end with one
// of the configured suffixes.
type Scanner struct {
	rootDir  string
	suffixes []string
}

// DefaultSuffixes are the route-set file names the CLI looks for.
var DefaultSuffixes = []string{".routes.yaml", ".routes.yml"}

// New returns a scanner rooted at rootDir. With no suffixes every file
// matches.
func New(rootDir string, suffixes ...string) *Scanner {
	return &Scanner{
		rootDir:  rootDir,
		suffixes: suffixes,
	}
}

// Scan walks the tree and returns every matching file. Stat information is
// collected concurrently, the walk itself is sequential.
func (s *Scanner) Scan() ([]RouteFile, error) {
	var (
		files []RouteFile
		mutex sync.Mutex
		wg    sync.WaitGroup
	)

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if s.isRouteFile(path) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				file := RouteFile{
					Path: path,
					Size: info.Size(),
				}
				mutex.Lock()
				files = append(files, file)
				mutex.Unlock()
			}()
		}
		return nil
	})

	wg.Wait()
	return files, err
}

func (s *Scanner) isRouteFile(path string) bool {
	if len(s.suffixes) == 0 {
		return true
	}

	name := filepath.Base(path)
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
