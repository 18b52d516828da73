package pattern

import "fmt"

// Validate checks a syntactically valid pattern against the semantic rules
// and returns every violation found, never just the first. An empty result
// means the pattern is ready to compile.
func Validate(pat *Pattern) []*SemanticError {
	var errs []*SemanticError

	errs = append(errs, checkParameterNames(pat)...)
	errs = append(errs, checkPositionalOrder(pat)...)
	errs = append(errs, checkOptionAliases(pat)...)
	errs = append(errs, checkSeparator(pat)...)

	return errs
}

// checkParameterNames rejects two parameters sharing one name, whether they
// are positional or bound to options.
func checkParameterNames(pat *Pattern) []*SemanticError {
	var errs []*SemanticError
	seen := make(map[string]bool)

	for _, param := range allParameters(pat) {
		if seen[param.Name] {
			errs = append(errs, semanticError(DuplicateParameterName, param,
				"parameter {%s} is declared more than once", param.Name))
			continue
		}
		seen[param.Name] = true
	}

	return errs
}

// checkPositionalOrder enforces every ordering rule over positional
// segments in a single pass: catch-all placement, optional-before-required,
// catch-all mixed with optionals, and reachability after a repeated
// parameter.
func checkPositionalOrder(pat *Pattern) []*SemanticError {
	var errs []*SemanticError

	var catchAll *Parameter
	var repeated *Parameter
	var firstOptional *Parameter
	optionalCount := 0

	for _, seg := range pat.Segments {
		switch s := seg.(type) {
		case *Literal:
			if catchAll != nil {
				errs = append(errs, semanticError(CatchAllNotAtEnd, s,
					"catch-all {*%s} must be the last segment", catchAll.Name))
			}

		case *Option:
			if catchAll != nil && s.Param != nil {
				errs = append(errs, semanticError(ParameterAfterCatchAll, s,
					"option %s binds a parameter after catch-all {*%s}", s.PrimaryForm(), catchAll.Name))
			}

		case *Parameter:
			if catchAll != nil {
				errs = append(errs, semanticError(ParameterAfterCatchAll, s,
					"parameter {%s} is unreachable after catch-all {*%s}", s.Name, catchAll.Name))
			}
			if repeated != nil {
				errs = append(errs, semanticError(ParameterAfterRepeated, s,
					"parameter {%s} is unreachable after repeated parameter {%s*}", s.Name, repeated.Name))
			}
			if firstOptional != nil && !s.Optional && !s.CatchAll {
				errs = append(errs, semanticError(OptionalBeforeRequired, s,
					"required parameter {%s} cannot follow optional parameter {%s?}", s.Name, firstOptional.Name))
			}
			if s.Optional {
				optionalCount++
				if optionalCount > 1 {
					errs = append(errs, semanticError(ConflictingOptionalParameters, s,
						"optional parameter {%s?} conflicts with earlier optional parameter {%s?}", s.Name, firstOptional.Name))
				}
				if firstOptional == nil {
					firstOptional = s
				}
			}
			if s.CatchAll {
				catchAll = s
			}
			if s.Repeated {
				repeated = s
			}
		}
	}

	if catchAll != nil && optionalCount > 0 {
		errs = append(errs, semanticError(MixedCatchAllWithOptional, catchAll,
			"catch-all {*%s} cannot be combined with optional positional parameters", catchAll.Name))
	}

	return errs
}

// checkOptionAliases rejects two options exposing the same long or short
// form.
func checkOptionAliases(pat *Pattern) []*SemanticError {
	var errs []*SemanticError
	seen := make(map[string]bool)

	record := func(form string, opt *Option) *SemanticError {
		if form == "" {
			return nil
		}
		if seen[form] {
			return semanticError(DuplicateOptionAlias, opt,
				"option form %s is already used by another option", form)
		}
		seen[form] = true
		return nil
	}

	for _, seg := range pat.Segments {
		opt, ok := seg.(*Option)
		if !ok {
			continue
		}
		if err := record(opt.PrimaryForm(), opt); err != nil {
			errs = append(errs, err)
		}
		if err := record(opt.AlternateForm(), opt); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// checkSeparator enforces the end-of-options "--" rules: at most one, never
// first, and only a catch-all parameter may follow it.
func checkSeparator(pat *Pattern) []*SemanticError {
	var errs []*SemanticError
	var sep *Separator

	for i, seg := range pat.Segments {
		switch s := seg.(type) {
		case *Separator:
			if i == 0 {
				errs = append(errs, semanticError(InvalidEndOfOptionsSeparator, s,
					"'--' cannot be the first segment of a pattern"))
			}
			if sep != nil {
				errs = append(errs, semanticError(InvalidEndOfOptionsSeparator, s,
					"'--' may appear at most once"))
			}
			if sep == nil {
				sep = s
			}

		case *Option:
			if sep != nil {
				errs = append(errs, semanticError(OptionsAfterEndOfOptionsSeparator, s,
					"option %s cannot follow the '--' separator", s.PrimaryForm()))
			}

		case *Parameter:
			if sep != nil && !s.CatchAll {
				errs = append(errs, semanticError(InvalidEndOfOptionsSeparator, s,
					"only a catch-all parameter may follow the '--' separator"))
			}

		case *Literal:
			if sep != nil {
				errs = append(errs, semanticError(InvalidEndOfOptionsSeparator, s,
					"literal %q cannot follow the '--' separator", s.Text))
			}
		}
	}

	return errs
}

// allParameters returns every parameter in the pattern in source order,
// including parameters bound to options.
func allParameters(pat *Pattern) []*Parameter {
	var params []*Parameter
	for _, seg := range pat.Segments {
		switch s := seg.(type) {
		case *Parameter:
			params = append(params, s)
		case *Option:
			if s.Param != nil {
				params = append(params, s.Param)
			}
		}
	}
	return params
}

// Describe renders a human-oriented summary of the rule a code enforces,
// used by tooling that lists all rules.
func Describe(code SemanticCode) string {
	switch code {
	case DuplicateParameterName:
		return "no two parameters may share a name"
	case ConflictingOptionalParameters:
		return "a pattern may declare at most one optional positional parameter"
	case CatchAllNotAtEnd:
		return "a catch-all parameter must be the final positional segment"
	case MixedCatchAllWithOptional:
		return "a catch-all cannot be combined with optional positional parameters"
	case DuplicateOptionAlias:
		return "no two options may expose the same form"
	case OptionalBeforeRequired:
		return "an optional positional parameter may not precede a required one"
	case InvalidEndOfOptionsSeparator:
		return "'--' may appear once, never first, and only a catch-all may follow it"
	case OptionsAfterEndOfOptionsSeparator:
		return "options may not appear after the '--' separator"
	case ParameterAfterCatchAll:
		return "no parameter may follow a catch-all parameter"
	case ParameterAfterRepeated:
		return "no positional parameter may follow a repeated parameter"
	default:
		return fmt.Sprintf("unknown rule %d", int(code))
	}
}
