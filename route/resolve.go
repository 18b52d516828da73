package route

import (
	"sort"
	"strings"

	"github.com/argroute/argroute/convert"
)

// Match is the outcome of a successful resolution: which route won and the
// typed values bound to its parameters.
type Match struct {
	Index    int // position of the route in the slice passed to Resolve
	Route    *CompiledRoute
	Bindings Bindings
}

var defaultRegistry = convert.NewRegistry()

// Resolve selects the best-matching route for an argument vector using the
// built-in converters. Among viable routes the highest specificity wins;
// ties go to the first-registered route. The boolean is false when no route
// is viable.
func Resolve(args []string, routes []*CompiledRoute) (*Match, bool) {
	return ResolveWith(args, routes, defaultRegistry)
}

// ResolveWith is Resolve with a caller-supplied converter registry.
//
// Candidates are tried in specificity order. A conversion failure makes only
// that candidate non-viable and resolution moves on to the next one, so an
// argument that fails one route's type constraint can still match a less
// specific route.
func ResolveWith(args []string, routes []*CompiledRoute, registry *convert.Registry) (*Match, bool) {
	order := make([]int, len(routes))
	for i := range order {
		order[i] = i
	}
	// Stable: equal specificity keeps registration order.
	sort.SliceStable(order, func(a, b int) bool {
		return routes[order[a]].Specificity > routes[order[b]].Specificity
	})

	for _, idx := range order {
		if bindings, ok := matchRoute(routes[idx], args, registry); ok {
			return &Match{Index: idx, Route: routes[idx], Bindings: bindings}, true
		}
	}
	return nil, false
}

// matchRoute walks the argument vector against one route. It returns the
// converted bindings, or ok=false when the route is not viable for these
// arguments.
func matchRoute(rt *CompiledRoute, args []string, registry *convert.Registry) (Bindings, bool) {
	usedCount := make([]int, len(rt.Options))
	raw := make(map[string][]string)
	var catchAll []string
	pi := 0
	afterSeparator := false

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if !afterSeparator && arg == "--" {
			if !rt.HasSeparator {
				return nil, false
			}
			afterSeparator = true
			continue
		}

		if !afterSeparator && looksLikeOption(arg) {
			consumed, ok := consumeOption(rt, args, i, usedCount, raw)
			if !ok {
				return nil, false
			}
			i += consumed
			continue
		}

		// Positional argument.
		if pi >= len(rt.Positionals) {
			return nil, false // leftover argument, nothing to absorb it
		}
		m := rt.Positionals[pi]
		switch {
		case m.Kind == MatchLiteral:
			if !strings.EqualFold(arg, m.Literal) {
				return nil, false
			}
			pi++

		case m.CatchAll:
			// A catch-all consumes everything that is left in one step and
			// ends the walk.
			catchAll = append(catchAll, args[i:]...)
			i = len(args)
			pi++

		case m.Repeated:
			raw[m.Name] = append(raw[m.Name], arg)

		default:
			raw[m.Name] = append(raw[m.Name], arg)
			pi++
		}
	}

	// A repeated positional that was being filled counts as consumed.
	if pi < len(rt.Positionals) && rt.Positionals[pi].Kind == MatchParameter &&
		rt.Positionals[pi].Repeated && len(raw[rt.Positionals[pi].Name]) > 0 {
		pi++
	}

	// Every remaining positional must be skippable.
	for ; pi < len(rt.Positionals); pi++ {
		m := rt.Positionals[pi]
		if m.Kind == MatchLiteral {
			return nil, false
		}
		if !m.CatchAll && !m.Optional {
			return nil, false
		}
	}

	// Every required option must have been seen.
	for idx, opt := range rt.Options {
		if !opt.Optional && usedCount[idx] == 0 {
			return nil, false
		}
	}

	return bind(rt, raw, catchAll, usedCount, registry)
}

// consumeOption matches one option-looking argument against the route's
// option matchers, either as an exact form or as a grouped short-option
// cluster like "-abc". It returns how many extra arguments were consumed
// (one when the option took a value) and whether the argument was accepted.
func consumeOption(rt *CompiledRoute, args []string, i int, usedCount []int, raw map[string][]string) (int, bool) {
	arg := args[i]

	for idx := range rt.Options {
		opt := &rt.Options[idx]
		if usedCount[idx] > 0 && !opt.Repeated {
			continue
		}
		if !opt.Matches(arg) {
			continue
		}
		usedCount[idx]++
		if !opt.ExpectsValue {
			return 0, true
		}
		if i+1 >= len(args) {
			return 0, false // flag present but its value is missing
		}
		raw[opt.ParameterName] = append(raw[opt.ParameterName], args[i+1])
		return 1, true
	}

	// Grouped short options: every character must name a distinct unused
	// boolean short option.
	if len(arg) > 2 && arg[1] != '-' {
		marked := make([]int, 0, len(arg)-1)
	cluster:
		for _, c := range arg[1:] {
			for idx := range rt.Options {
				opt := &rt.Options[idx]
				if usedCount[idx] > 0 || opt.ExpectsValue {
					continue
				}
				if opt.ShortName() == string(c) && !contains(marked, idx) {
					marked = append(marked, idx)
					continue cluster
				}
			}
			return 0, false
		}
		for _, idx := range marked {
			usedCount[idx]++
		}
		return 0, true
	}

	return 0, false
}

// bind runs every captured raw value through the converter and assembles the
// final bindings. A conversion failure makes the route non-viable.
func bind(rt *CompiledRoute, raw map[string][]string, catchAll []string, usedCount []int, registry *convert.Registry) (Bindings, bool) {
	bindings := make(Bindings)

	if rt.CatchAllName != "" {
		bindings[rt.CatchAllName] = catchAll
	}

	convertAll := func(name, constraint string, repeated bool) bool {
		values, present := raw[name]
		if !present {
			return true // optional and unset: stays unbound
		}
		if repeated {
			converted := make([]any, 0, len(values))
			for _, v := range values {
				cv, err := registry.Convert(v, constraint)
				if err != nil {
					return false
				}
				converted = append(converted, cv)
			}
			bindings[name] = converted
			return true
		}
		cv, err := registry.Convert(values[0], constraint)
		if err != nil {
			return false
		}
		bindings[name] = cv
		return true
	}

	for _, m := range rt.Positionals {
		if m.Kind != MatchParameter || m.CatchAll {
			continue
		}
		if !convertAll(m.Name, m.Constraint, m.Repeated) {
			return nil, false
		}
	}

	for idx, opt := range rt.Options {
		if !opt.ExpectsValue {
			// Boolean flags always bind: present means true, absent means
			// false, never a match failure.
			bindings[opt.Name()] = usedCount[idx] > 0
			continue
		}
		if !convertAll(opt.ParameterName, opt.Constraint, opt.Repeated) {
			return nil, false
		}
	}

	return bindings, true
}

// Name returns the option's binding key: its primary form without dashes.
func (o *OptionMatcher) Name() string {
	return strings.TrimLeft(o.PrimaryForm, "-")
}

func looksLikeOption(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && arg != "--"
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
