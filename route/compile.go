// Package route turns validated pattern syntax trees into immutable
// compiled routes and resolves argument vectors against sets of them.
package route

import (
	"strings"

	"github.com/argroute/argroute/pattern"
)

// Specificity weights. Literals are the strongest signal of intent, options
// narrow the match space, and a catch-all is penalized because it matches
// everything and must lose to any more specific competitor.
const (
	literalWeight     = 15
	parameterWeight   = 2
	optionWeight      = 10
	optionValueWeight = 5
	catchAllPenalty   = -20
)

// MatcherKind distinguishes the two positional matcher shapes.
type MatcherKind int

const (
	MatchLiteral MatcherKind = iota
	MatchParameter
)

// Matcher matches one positional argument (or, for a catch-all, all
// remaining arguments).
type Matcher struct {
	Kind MatcherKind

	// Literal fields.
	Literal string

	// Parameter fields.
	Name        string
	CatchAll    bool
	Optional    bool
	Repeated    bool
	Constraint  string // "" when untyped
	Nullable    bool
	Description string
}

// OptionMatcher matches a --flag / -f argument anywhere in the argument
// vector. PrimaryForm is always the long form when one exists.
type OptionMatcher struct {
	PrimaryForm   string // dashed, e.g. "--version"
	AlternateForm string // dashed, e.g. "-v", or ""
	ExpectsValue  bool
	ParameterName string
	Constraint    string
	Nullable      bool
	Optional      bool
	Repeated      bool
	Description   string
}

// Matches reports whether arg is one of the option's forms.
func (o *OptionMatcher) Matches(arg string) bool {
	return arg == o.PrimaryForm || (o.AlternateForm != "" && arg == o.AlternateForm)
}

// ShortName returns the single-character short name without its dash, or ""
// when the option has no short form usable in a grouped cluster.
func (o *OptionMatcher) ShortName() string {
	for _, form := range []string{o.PrimaryForm, o.AlternateForm} {
		if strings.HasPrefix(form, "-") && !strings.HasPrefix(form, "--") && len(form) == 2 {
			return form[1:]
		}
	}
	return ""
}

// CompiledRoute is the immutable, matchable artifact produced once per
// pattern. It is safe for concurrent readers and is never mutated after
// Compile returns it.
type CompiledRoute struct {
	Source       string
	Positionals  []Matcher
	Options      []OptionMatcher
	CatchAllName string // "" when the route has no catch-all
	HasSeparator bool   // the pattern contains the end-of-options "--"
	Specificity  int
}

// Compile folds a validated pattern into a CompiledRoute. It is pure, total
// and deterministic: by this stage the tree has passed parsing and semantic
// validation, so compilation cannot fail.
func Compile(pat *pattern.Pattern) *CompiledRoute {
	route := &CompiledRoute{Source: pat.Source}

	for _, seg := range pat.Segments {
		switch s := seg.(type) {
		case *pattern.Literal:
			route.Positionals = append(route.Positionals, Matcher{
				Kind:    MatchLiteral,
				Literal: s.Text,
			})
			route.Specificity += literalWeight

		case *pattern.Parameter:
			route.Positionals = append(route.Positionals, compileParameter(s))
			if s.CatchAll {
				route.CatchAllName = s.Name
				route.Specificity += catchAllPenalty
			} else {
				route.Specificity += parameterWeight
			}

		case *pattern.Option:
			route.Options = append(route.Options, compileOption(s))
			route.Specificity += optionWeight
			if s.Param != nil {
				route.Specificity += optionValueWeight
			}

		case *pattern.Separator:
			route.HasSeparator = true
		}
	}

	return route
}

func compileParameter(p *pattern.Parameter) Matcher {
	return Matcher{
		Kind:        MatchParameter,
		Name:        p.Name,
		CatchAll:    p.CatchAll,
		Optional:    p.Optional,
		Repeated:    p.Repeated,
		Constraint:  p.Constraint,
		Nullable:    p.Nullable,
		Description: p.Description,
	}
}

func compileOption(o *pattern.Option) OptionMatcher {
	m := OptionMatcher{
		PrimaryForm:   o.PrimaryForm(),
		AlternateForm: o.AlternateForm(),
		Description:   o.Description,
	}

	if o.Param == nil {
		// A boolean flag is always optional: a missing flag means "false",
		// never a match failure.
		m.Optional = true
		return m
	}

	m.ExpectsValue = true
	m.ParameterName = o.Param.Name
	m.Constraint = o.Param.Constraint
	m.Nullable = o.Param.Nullable
	m.Optional = o.Param.Optional || o.Param.Nullable
	m.Repeated = o.Param.Repeated
	return m
}
