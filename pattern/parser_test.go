package pattern

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidPatterns(t *testing.T) {
	t.Parallel()

	t.Run("literals and parameter", func(t *testing.T) {
		pat, errs := Parse("deploy {env}")
		require.Empty(t, errs)
		require.Len(t, pat.Segments, 2)

		lit, ok := pat.Segments[0].(*Literal)
		require.True(t, ok)
		assert.Equal(t, "deploy", lit.Text)

		param, ok := pat.Segments[1].(*Parameter)
		require.True(t, ok)
		assert.Equal(t, "env", param.Name)
		assert.False(t, param.Optional)
		assert.False(t, param.CatchAll)
	})

	t.Run("option with alias and optional typed value", func(t *testing.T) {
		pat, errs := Parse("deploy {env} --replicas,-r {n:int?}")
		require.Empty(t, errs)
		require.Len(t, pat.Segments, 3)

		opt, ok := pat.Segments[2].(*Option)
		require.True(t, ok)
		assert.Equal(t, "replicas", opt.Long)
		assert.Equal(t, "r", opt.Short)
		assert.Equal(t, "--replicas", opt.PrimaryForm())
		assert.Equal(t, "-r", opt.AlternateForm())

		require.NotNil(t, opt.Param)
		assert.Equal(t, "n", opt.Param.Name)
		assert.Equal(t, "int", opt.Param.Constraint)
		assert.True(t, opt.Param.Nullable)
	})

	t.Run("short option promoted to alternate when a long alias exists", func(t *testing.T) {
		pat, errs := Parse("commit -m,--message {text}")
		require.Empty(t, errs)

		opt, ok := pat.Segments[1].(*Option)
		require.True(t, ok)
		// The long form is always primary, whatever the source order.
		assert.Equal(t, "--message", opt.PrimaryForm())
		assert.Equal(t, "-m", opt.AlternateForm())
	})

	t.Run("catch-all parameter", func(t *testing.T) {
		pat, errs := Parse("{*args}")
		require.Empty(t, errs)

		param, ok := pat.Segments[0].(*Parameter)
		require.True(t, ok)
		assert.True(t, param.CatchAll)
		assert.Equal(t, "args", param.Name)
	})

	t.Run("repeated parameter", func(t *testing.T) {
		pat, errs := Parse("build --tag {tags*}")
		require.Empty(t, errs)

		opt, ok := pat.Segments[1].(*Option)
		require.True(t, ok)
		require.NotNil(t, opt.Param)
		assert.True(t, opt.Param.Repeated)
	})

	t.Run("descriptions", func(t *testing.T) {
		pat, errs := Parse("{env | target environment} --force | skip confirmation {tag}")
		require.Empty(t, errs)
		require.Len(t, pat.Segments, 2)

		param := pat.Segments[0].(*Parameter)
		assert.Equal(t, "target environment", param.Description)

		opt := pat.Segments[1].(*Option)
		assert.Equal(t, "skip confirmation", opt.Description)
		require.NotNil(t, opt.Param)
		assert.Equal(t, "tag", opt.Param.Name)
	})

	t.Run("bare double dash is the separator", func(t *testing.T) {
		pat, errs := Parse("run -- {*args}")
		require.Empty(t, errs)
		require.Len(t, pat.Segments, 3)

		_, ok := pat.Segments[1].(*Separator)
		assert.True(t, ok)
	})

	t.Run("segment order is preserved", func(t *testing.T) {
		pat, errs := Parse("git commit --amend --no-verify")
		require.Empty(t, errs)
		require.Len(t, pat.Segments, 4)
		assert.Equal(t, "git", pat.Segments[0].(*Literal).Text)
		assert.Equal(t, "commit", pat.Segments[1].(*Literal).Text)
		assert.Equal(t, "amend", pat.Segments[2].(*Option).Long)
		assert.Equal(t, "no-verify", pat.Segments[3].(*Option).Long)
	})
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantCount int // minimum number of errors
		contains  string
	}{
		{
			name:      "stray closing brace",
			input:     "deploy config}",
			wantCount: 1,
			contains:  "unexpected '}'",
		},
		{
			name:      "closing brace after space",
			input:     "deploy }",
			wantCount: 1,
			contains:  "unexpected '}'",
		},
		{
			name:      "nested braces",
			input:     "test {a{b}}",
			wantCount: 1,
			contains:  "expected '}'",
		},
		{
			name:      "empty parameter",
			input:     "{}",
			wantCount: 1,
			contains:  "parameter name is missing",
		},
		{
			name:      "unterminated parameter",
			input:     "test {",
			wantCount: 1,
			contains:  "expected parameter name",
		},
		{
			name:      "unterminated named parameter",
			input:     "test {env",
			wantCount: 1,
			contains:  "unterminated parameter",
		},
		{
			name:      "missing type name",
			input:     "{n:}",
			wantCount: 1,
			contains:  "expected a type name",
		},
		{
			name:      "option without a name",
			input:     "deploy -- force me",
			wantCount: 0, // separator, then literals: no syntax error
		},
		{
			name:      "dash with detached name",
			input:     "deploy - v",
			wantCount: 1,
			contains:  "expected an option name",
		},
		{
			name:      "alias without dash",
			input:     "--force,f",
			wantCount: 1,
			contains:  "expected '-'",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, errs := Parse(tt.input)
			require.GreaterOrEqual(t, len(errs), tt.wantCount, "errors: %v", errs)
			if tt.contains == "" {
				return
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e.Message, tt.contains) {
					found = true
					break
				}
			}
			assert.True(t, found, "no error containing %q in %v", tt.contains, errs)
		})
	}
}

func TestParseAngleBracketSuggestion(t *testing.T) {
	t.Parallel()

	_, errs := Parse("deploy <env>")
	require.Len(t, errs, 1)
	assert.Equal(t, "{env}", errs[0].Suggestion)
	assert.Equal(t, 7, errs[0].Position)
	assert.Equal(t, 5, errs[0].Length)
}

func TestParseReportsAllErrorsInOneCall(t *testing.T) {
	t.Parallel()

	_, errs := Parse("} <a> {")
	require.GreaterOrEqual(t, len(errs), 3)
}

// Regression guard for the historical infinite-loop defect: every string
// over the DSL token alphabet must parse in bounded time. The exhaustive
// sweep covers all inputs up to three atoms; the explicit list covers the
// recorded pathological cases.
func TestParseTermination(t *testing.T) {
	t.Parallel()

	degenerate := []string{
		"deploy config}", "deploy }", "test {a{b}}", "{}", "test {",
		"}}}}", "{{{{", "{*}", "{?}", "{a?b}", "--,", ",--", "a,b", "||||",
	}

	alphabet := []string{"{", "}", "*", "?", ":", "|", ",", "-", "--", "a", "<env>"}
	var inputs []string
	inputs = append(inputs, degenerate...)
	for _, a := range alphabet {
		inputs = append(inputs, a)
		for _, b := range alphabet {
			inputs = append(inputs, a+b, a+" "+b)
			for _, c := range alphabet {
				inputs = append(inputs, a+b+c)
			}
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, input := range inputs {
			Parse(input)
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("parser did not terminate on degenerate inputs")
	}
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()

	src := "deploy {env} --version,-v {tag?} -- {*rest}"
	first, errs1 := Parse(src)
	second, errs2 := Parse(src)
	require.Empty(t, errs1)
	require.Empty(t, errs2)
	assert.Equal(t, first, second)
}
