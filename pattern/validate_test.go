package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Pattern {
	t.Helper()
	pat, errs := Parse(src)
	require.Empty(t, errs, "pattern %q should be syntactically valid", src)
	return pat
}

func codes(errs []*SemanticError) []SemanticCode {
	if len(errs) == 0 {
		return nil
	}
	out := make([]SemanticCode, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []SemanticCode
		wantAny []SemanticCode // at least one of these
	}{
		{
			name:  "clean pattern",
			input: "deploy {env} --version,-v {tag?}",
			want:  nil,
		},
		{
			name:  "duplicate parameter name",
			input: "copy {path} {path}",
			want:  []SemanticCode{DuplicateParameterName},
		},
		{
			name:  "duplicate across positional and option",
			input: "copy {path} --to {path}",
			want:  []SemanticCode{DuplicateParameterName},
		},
		{
			name:    "catch-all not at end",
			input:   "{*items} more",
			wantAny: []SemanticCode{CatchAllNotAtEnd, ParameterAfterCatchAll},
		},
		{
			name:  "parameter after catch-all",
			input: "{*items} {x}",
			want:  []SemanticCode{ParameterAfterCatchAll},
		},
		{
			name:  "option parameter after catch-all",
			input: "{*items} --to {dest}",
			want:  []SemanticCode{ParameterAfterCatchAll},
		},
		{
			name:  "optional before required",
			input: "deploy {a?} {b}",
			want:  []SemanticCode{OptionalBeforeRequired},
		},
		{
			name:  "two optional positionals conflict",
			input: "deploy {a?} {b?}",
			want:  []SemanticCode{ConflictingOptionalParameters},
		},
		{
			name:  "catch-all mixed with optional",
			input: "run {mode?} {*rest}",
			want:  []SemanticCode{MixedCatchAllWithOptional},
		},
		{
			name:  "duplicate option alias",
			input: "build --force,-f --fast,-f",
			want:  []SemanticCode{DuplicateOptionAlias},
		},
		{
			name:  "separator cannot be first",
			input: "-- {*args}",
			want:  []SemanticCode{InvalidEndOfOptionsSeparator},
		},
		{
			name:  "separator at most once",
			input: "run -- -- {*args}",
			want:  []SemanticCode{InvalidEndOfOptionsSeparator},
		},
		{
			name:  "option after separator",
			input: "run -- --verbose",
			want:  []SemanticCode{OptionsAfterEndOfOptionsSeparator},
		},
		{
			name:  "plain parameter after separator",
			input: "run -- {x}",
			want:  []SemanticCode{InvalidEndOfOptionsSeparator},
		},
		{
			name:  "literal after separator",
			input: "run -- then",
			want:  []SemanticCode{InvalidEndOfOptionsSeparator},
		},
		{
			name:  "catch-all after separator is fine",
			input: "run -- {*args}",
			want:  nil,
		},
		{
			name:  "positional after repeated parameter",
			input: "sum {values*} {out}",
			want:  []SemanticCode{ParameterAfterRepeated},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := Validate(mustParse(t, tt.input))

			if tt.wantAny != nil {
				got := codes(errs)
				found := false
				for _, want := range tt.wantAny {
					for _, code := range got {
						if code == want {
							found = true
						}
					}
				}
				assert.True(t, found, "want one of %v, got %v", tt.wantAny, got)
				return
			}

			assert.Equal(t, tt.want, codes(errs), "errors: %v", errs)
		})
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	t.Parallel()

	// One pattern, several independent problems: a duplicate name and a
	// required parameter after an optional one.
	errs := Validate(mustParse(t, "x {a?} {b} {b}"))
	got := codes(errs)

	assert.Contains(t, got, OptionalBeforeRequired)
	assert.Contains(t, got, DuplicateParameterName)
	assert.GreaterOrEqual(t, len(errs), 2)
}

func TestSemanticErrorSpansPointIntoSource(t *testing.T) {
	t.Parallel()

	src := "{*items} {x}"
	errs := Validate(mustParse(t, src))
	require.NotEmpty(t, errs)

	for _, e := range errs {
		position, length := e.Span()
		assert.GreaterOrEqual(t, position, 0)
		assert.Greater(t, length, 0)
		assert.LessOrEqual(t, position+length, len(src))
	}
}
