// Package usage renders compiled routes as human-readable usage strings.
// It is a read-only consumer of the compiled route structure and never
// mutates it.
package usage

import (
	"fmt"
	"strings"

	"github.com/argroute/argroute/route"
)

// Render returns a one-line usage string for a route, for example
// "deploy <env> [--version <tag>]".
func Render(rt *route.CompiledRoute) string {
	var parts []string

	for _, m := range rt.Positionals {
		parts = append(parts, positional(m))
	}
	for i := range rt.Options {
		parts = append(parts, option(&rt.Options[i]))
	}

	return strings.Join(parts, " ")
}

// RenderSet renders a listing of named routes, one per line, aligned on the
// usage column. The names slice aligns 1:1 with the routes slice.
func RenderSet(names []string, routes []*route.CompiledRoute) string {
	width := 0
	usages := make([]string, len(routes))
	for i, rt := range routes {
		usages[i] = Render(rt)
		if len(usages[i]) > width {
			width = len(usages[i])
		}
	}

	lines := make([]string, 0, len(routes))
	for i, rt := range routes {
		label := ""
		if i < len(names) && names[i] != "" {
			label = names[i] + ": "
		}
		if desc := describeRoute(rt); desc != "" {
			lines = append(lines, fmt.Sprintf("  %s%-*s  %s", label, width, usages[i], desc))
		} else {
			lines = append(lines, fmt.Sprintf("  %s%s", label, usages[i]))
		}
	}
	return strings.Join(lines, "\n")
}

func positional(m route.Matcher) string {
	if m.Kind == route.MatchLiteral {
		return m.Literal
	}

	name := "<" + m.Name + ">"
	switch {
	case m.CatchAll:
		return "[" + name + "...]"
	case m.Repeated && m.Optional:
		return "[" + name + "...]"
	case m.Repeated:
		return name + "..."
	case m.Optional || m.Nullable:
		return "[" + name + "]"
	default:
		return name
	}
}

func option(o *route.OptionMatcher) string {
	form := o.PrimaryForm
	if o.AlternateForm != "" {
		form += "|" + o.AlternateForm
	}
	if o.ExpectsValue {
		form += " <" + o.ParameterName + ">"
	}
	if o.Optional {
		return "[" + form + "]"
	}
	return form
}

// describeRoute collects the parameter and option descriptions declared in
// the pattern into one summary sentence.
func describeRoute(rt *route.CompiledRoute) string {
	var notes []string
	for _, m := range rt.Positionals {
		if m.Kind == route.MatchParameter && m.Description != "" {
			notes = append(notes, fmt.Sprintf("%s: %s", m.Name, m.Description))
		}
	}
	for i := range rt.Options {
		if rt.Options[i].Description != "" {
			notes = append(notes, fmt.Sprintf("%s: %s", rt.Options[i].PrimaryForm, rt.Options[i].Description))
		}
	}
	return strings.Join(notes, "; ")
}
