package argroute

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/argroute/argroute/pattern"
)

// RouteSet is the on-disk description of a router: a named list of route
// definitions, stored as YAML.
type RouteSet struct {
	Name   string     `yaml:"name"`
	Routes []RouteDef `yaml:"routes"`
}

// RouteDef is one route entry in a route set file.
type RouteDef struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern"`
	Description string `yaml:"description,omitempty"`
}

// PatternReport carries the diagnostics for one pattern of a route set. An
// empty Diagnostics slice means the pattern compiled cleanly.
type PatternReport struct {
	Name        string
	Pattern     string
	Diagnostics []pattern.Diagnostic
}

// ReadRouteSet parses a route set YAML file.
func ReadRouteSet(path string) (*RouteSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var set RouteSet
	if err := yaml.NewDecoder(f).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing route set %s: %w", path, err)
	}
	return &set, nil
}

// LoadFile reads a route set file and registers every pattern in it. The
// first bad pattern aborts loading with a *RegistrationError; use CheckSet
// to collect diagnostics for all patterns instead.
func LoadFile(path string) (*Router, error) {
	set, err := ReadRouteSet(path)
	if err != nil {
		return nil, err
	}
	return LoadSet(set)
}

// LoadSet builds a router from an in-memory route set.
func LoadSet(set *RouteSet) (*Router, error) {
	router := New()
	for _, def := range set.Routes {
		if err := router.Register(def.Name, def.Pattern); err != nil {
			return nil, err
		}
	}
	return router, nil
}

// CheckSet compiles every pattern in the set independently and returns one
// report per pattern, so a file full of problems is reported in a single
// pass.
func CheckSet(set *RouteSet) []PatternReport {
	reports := make([]PatternReport, 0, len(set.Routes))
	for _, def := range set.Routes {
		_, diags := CompilePattern(def.Pattern)
		reports = append(reports, PatternReport{
			Name:        def.Name,
			Pattern:     def.Pattern,
			Diagnostics: diags,
		})
	}
	return reports
}

// CheckFile reads a route set file and checks every pattern in it.
func CheckFile(path string) ([]PatternReport, error) {
	set, err := ReadRouteSet(path)
	if err != nil {
		return nil, err
	}
	return CheckSet(set), nil
}

// WriteStarterSet writes a small example route set, used by "argroute init".
func WriteStarterSet(path string) error {
	set := RouteSet{
		Name: "example",
		Routes: []RouteDef{
			{Name: "status", Pattern: "status --verbose,-v"},
			{Name: "deploy", Pattern: "deploy {env} --version,-v {tag?}"},
			{Name: "run", Pattern: "run -- {*args}"},
		},
	}

	d, err := yaml.Marshal(set)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
