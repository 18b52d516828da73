package pattern

import "fmt"

// Diagnostic is the common surface of ParseError and SemanticError: an error
// with a byte span into the source pattern, suitable for caret-style
// rendering, plus an optional fix-it hint.
type Diagnostic interface {
	error
	// Span returns the byte offset and length of the offending region.
	Span() (position, length int)
	// Hint returns suggestion text, or "" when there is none.
	Hint() string
}

var (
	_ Diagnostic = (*ParseError)(nil)
	_ Diagnostic = (*SemanticError)(nil)
)

// ParseError is a syntax-level defect in a pattern string: an unterminated
// parameter, a malformed option, an unknown character and so on.
type ParseError struct {
	Position   int
	Length     int
	Message    string
	Suggestion string // optional rewrite hint, e.g. "{name}" for "<name>"
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Span() (int, int) { return e.Position, e.Length }

func (e *ParseError) Hint() string { return e.Suggestion }

// SemanticCode identifies one of the closed set of semantic rule violations.
type SemanticCode int

const (
	DuplicateParameterName SemanticCode = iota
	ConflictingOptionalParameters
	CatchAllNotAtEnd
	MixedCatchAllWithOptional
	DuplicateOptionAlias
	OptionalBeforeRequired
	InvalidEndOfOptionsSeparator
	OptionsAfterEndOfOptionsSeparator
	ParameterAfterCatchAll
	ParameterAfterRepeated
)

func (c SemanticCode) String() string {
	switch c {
	case DuplicateParameterName:
		return "duplicate-parameter-name"
	case ConflictingOptionalParameters:
		return "conflicting-optional-parameters"
	case CatchAllNotAtEnd:
		return "catch-all-not-at-end"
	case MixedCatchAllWithOptional:
		return "mixed-catch-all-with-optional"
	case DuplicateOptionAlias:
		return "duplicate-option-alias"
	case OptionalBeforeRequired:
		return "optional-before-required"
	case InvalidEndOfOptionsSeparator:
		return "invalid-end-of-options-separator"
	case OptionsAfterEndOfOptionsSeparator:
		return "options-after-end-of-options-separator"
	case ParameterAfterCatchAll:
		return "parameter-after-catch-all"
	case ParameterAfterRepeated:
		return "parameter-after-repeated"
	default:
		return "unknown"
	}
}

// SemanticError is a rule violation found on a syntactically valid pattern,
// such as a catch-all parameter that is not the last segment.
type SemanticError struct {
	Code     SemanticCode
	Position int
	Length   int
	Message  string
}

func (e *SemanticError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func (e *SemanticError) Span() (int, int) { return e.Position, e.Length }

func (e *SemanticError) Hint() string { return "" }

func semanticError(code SemanticCode, seg Segment, format string, args ...any) *SemanticError {
	return &SemanticError{
		Code:     code,
		Position: seg.Pos(),
		Length:   seg.End() - seg.Pos(),
		Message:  fmt.Sprintf(format, args...),
	}
}
