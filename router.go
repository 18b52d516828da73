// Package argroute matches CLI argument vectors against declaratively
// registered route patterns, the way a web framework matches URL paths, and
// binds the matched arguments to typed parameter values.
package argroute

import (
	"fmt"
	"strings"

	"github.com/argroute/argroute/convert"
	"github.com/argroute/argroute/pattern"
	"github.com/argroute/argroute/route"
)

// RegistrationError carries every problem found in one pattern: all syntax
// errors, or all semantic violations once the pattern parsed. One pattern's
// failure never affects another registration.
type RegistrationError struct {
	Name        string
	Pattern     string
	Diagnostics []pattern.Diagnostic
}

func (e *RegistrationError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.Error()
	}
	return fmt.Sprintf("pattern %q (%s): %s", e.Pattern, e.Name, strings.Join(msgs, "; "))
}

// Result is a successful dispatch: the winning route's identity and its
// bound parameter values.
type Result struct {
	Name     string
	Pattern  string
	Bindings route.Bindings
}

// Router owns an ordered set of compiled routes. Registration order is
// significant: it breaks specificity ties at dispatch time, first registered
// wins. A Router is safe for concurrent Dispatch calls once registration is
// done.
type Router struct {
	names    []string
	routes   []*route.CompiledRoute
	registry *convert.Registry
}

// New returns an empty router using the built-in value converters.
func New() *Router {
	return &Router{registry: convert.NewRegistry()}
}

// Converters exposes the router's converter registry so callers can install
// custom constraints and enum types before registering patterns.
func (r *Router) Converters() *convert.Registry {
	return r.registry
}

// Register parses, validates and compiles one pattern and adds it to the
// route set. On failure it returns a *RegistrationError listing every
// problem in the pattern, and the router is left unchanged.
func (r *Router) Register(name, src string) error {
	compiled, diags := CompilePattern(src)
	if len(diags) > 0 {
		return &RegistrationError{Name: name, Pattern: src, Diagnostics: diags}
	}
	r.names = append(r.names, name)
	r.routes = append(r.routes, compiled)
	return nil
}

// MustRegister is Register for static patterns known to be valid; it panics
// on a bad pattern, mirroring regexp.MustCompile.
func (r *Router) MustRegister(name, src string) {
	if err := r.Register(name, src); err != nil {
		panic(err)
	}
}

// Dispatch resolves an argument vector against the registered routes. The
// boolean is false when no route matched; producing the user-facing
// "unknown command" message is the caller's job.
func (r *Router) Dispatch(args []string) (*Result, bool) {
	match, ok := route.ResolveWith(args, r.routes, r.registry)
	if !ok {
		return nil, false
	}
	return &Result{
		Name:     r.names[match.Index],
		Pattern:  match.Route.Source,
		Bindings: match.Bindings,
	}, true
}

// Routes returns the compiled routes in registration order. The slice and
// the routes it holds must be treated as read-only.
func (r *Router) Routes() []*route.CompiledRoute {
	return r.routes
}

// Names returns the route names in registration order.
func (r *Router) Names() []string {
	return r.names
}

// Len returns the number of registered routes.
func (r *Router) Len() int {
	return len(r.routes)
}

// CompilePattern runs the full registration pipeline on one pattern string:
// tokenize, parse, validate, compile. On failure it returns every diagnostic
// found, syntax errors first when both stages would have complained.
func CompilePattern(src string) (*route.CompiledRoute, []pattern.Diagnostic) {
	tree, parseErrs := pattern.Parse(src)
	if len(parseErrs) > 0 {
		diags := make([]pattern.Diagnostic, len(parseErrs))
		for i, e := range parseErrs {
			diags[i] = e
		}
		return nil, diags
	}

	if semErrs := pattern.Validate(tree); len(semErrs) > 0 {
		diags := make([]pattern.Diagnostic, len(semErrs))
		for i, e := range semErrs {
			diags[i] = e
		}
		return nil, diags
	}

	return route.Compile(tree), nil
}
