// Package complete enumerates the legal next tokens for a partial argument
// vector against a set of compiled routes. It is a read-only consumer of the
// compiled route structure: it walks the same matchers the resolver does but
// never binds or converts values.
package complete

import (
	"sort"
	"strings"

	"github.com/argroute/argroute/route"
)

// Candidates returns every token that could legally extend args against one
// of the routes, filtered by prefix and sorted. Parameter positions yield a
// "<name>" placeholder so callers can render expected input even when the
// value set cannot be enumerated.
func Candidates(routes []*route.CompiledRoute, args []string, prefix string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(candidate string) {
		if candidate == "" || !strings.HasPrefix(candidate, prefix) {
			return
		}
		if !seen[candidate] {
			seen[candidate] = true
			out = append(out, candidate)
		}
	}

	for _, rt := range routes {
		forRoute(rt, args, add)
	}

	sort.Strings(out)
	return out
}

// forRoute replays args against one route without converting values, then
// reports what could come next. Routes the prefix cannot belong to
// contribute nothing.
func forRoute(rt *route.CompiledRoute, args []string, add func(string)) {
	used := make([]bool, len(rt.Options))
	pi := 0
	afterSeparator := false

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if !afterSeparator && arg == "--" && rt.HasSeparator {
			afterSeparator = true
			continue
		}

		if !afterSeparator && len(arg) > 1 && arg[0] == '-' {
			matched := false
			for idx := range rt.Options {
				opt := &rt.Options[idx]
				if used[idx] && !opt.Repeated {
					continue
				}
				if !opt.Matches(arg) {
					continue
				}
				used[idx] = true
				matched = true
				if opt.ExpectsValue {
					if i+1 >= len(args) {
						// The next token is this option's value.
						add("<" + opt.ParameterName + ">")
						return
					}
					i++
				}
				break
			}
			if !matched {
				return
			}
			continue
		}

		if pi >= len(rt.Positionals) {
			return
		}
		m := rt.Positionals[pi]
		switch {
		case m.Kind == route.MatchLiteral:
			if !strings.EqualFold(arg, m.Literal) {
				return
			}
			pi++
		case m.CatchAll:
			// Free text from here on; nothing to suggest.
			return
		case m.Repeated:
			// stays at the same matcher
		default:
			pi++
		}
	}

	// Suggest the next positional.
	if pi < len(rt.Positionals) {
		m := rt.Positionals[pi]
		if m.Kind == route.MatchLiteral {
			add(m.Literal)
		} else if !m.CatchAll {
			add("<" + m.Name + ">")
		}
	}

	// Suggest every option not yet consumed.
	if !afterSeparator {
		for idx := range rt.Options {
			opt := &rt.Options[idx]
			if used[idx] && !opt.Repeated {
				continue
			}
			add(opt.PrimaryForm)
			if opt.AlternateForm != "" {
				add(opt.AlternateForm)
			}
		}
		if rt.HasSeparator {
			add("--")
		}
	}
}
