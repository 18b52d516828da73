package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argroute/argroute/pattern"
	"github.com/argroute/argroute/route"
)

func compileAll(t *testing.T, patterns ...string) []*route.CompiledRoute {
	t.Helper()
	routes := make([]*route.CompiledRoute, len(patterns))
	for i, p := range patterns {
		tree, errs := pattern.Parse(p)
		require.Empty(t, errs)
		require.Empty(t, pattern.Validate(tree))
		routes[i] = route.Compile(tree)
	}
	return routes
}

func TestCandidatesAtStart(t *testing.T) {
	t.Parallel()

	routes := compileAll(t, "deploy {env} --force", "status --verbose,-v")

	got := Candidates(routes, nil, "")
	assert.Contains(t, got, "deploy")
	assert.Contains(t, got, "status")
	assert.Contains(t, got, "--force")
	assert.Contains(t, got, "--verbose")
	assert.Contains(t, got, "-v")
}

func TestCandidatesAfterLiteral(t *testing.T) {
	t.Parallel()

	routes := compileAll(t, "deploy {env} --force", "status")

	got := Candidates(routes, []string{"deploy"}, "")
	assert.Contains(t, got, "<env>")
	assert.Contains(t, got, "--force")
	assert.NotContains(t, got, "status", "the status route cannot extend 'deploy'")
}

func TestCandidatesPrefixFilter(t *testing.T) {
	t.Parallel()

	routes := compileAll(t, "deploy {env} --force --dry-run")

	got := Candidates(routes, []string{"deploy", "prod"}, "--d")
	assert.Equal(t, []string{"--dry-run"}, got)
}

func TestCandidatesConsumedOptionsAreNotRepeated(t *testing.T) {
	t.Parallel()

	routes := compileAll(t, "deploy {env} --force --dry-run")

	got := Candidates(routes, []string{"deploy", "prod", "--force"}, "")
	assert.Contains(t, got, "--dry-run")
	assert.NotContains(t, got, "--force")
}

func TestCandidatesPendingOptionValue(t *testing.T) {
	t.Parallel()

	routes := compileAll(t, "deploy {env} --version {tag}")

	got := Candidates(routes, []string{"deploy", "dev", "--version"}, "")
	assert.Equal(t, []string{"<tag>"}, got)
}

func TestCandidatesCatchAllSuggestsNothing(t *testing.T) {
	t.Parallel()

	routes := compileAll(t, "exec {cmd} -- {*argv}")

	got := Candidates(routes, []string{"exec", "ls", "--", "x"}, "")
	assert.Empty(t, got)
}

func TestCandidatesResultsAreSortedAndUnique(t *testing.T) {
	t.Parallel()

	routes := compileAll(t, "push --force", "pull --force")

	got := Candidates(routes, nil, "")
	assert.Equal(t, []string{"--force", "pull", "push"}, got)
}
