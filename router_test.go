package argroute

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterRegisterAndDispatch(t *testing.T) {
	t.Parallel()

	router := New()
	require.NoError(t, router.Register("status", "status --verbose,-v"))
	require.NoError(t, router.Register("deploy", "deploy {env} --version {tag?}"))

	result, ok := router.Dispatch([]string{"deploy", "prod", "--version", "2.0"})
	require.True(t, ok)
	assert.Equal(t, "deploy", result.Name)
	assert.Equal(t, "prod", result.Bindings.String("env"))
	assert.Equal(t, "2.0", result.Bindings.String("tag"))

	_, ok = router.Dispatch([]string{"unknown", "command"})
	assert.False(t, ok)
}

func TestRouterRegisterCollectsAllDiagnostics(t *testing.T) {
	t.Parallel()

	router := New()
	err := router.Register("broken", "} <a> {")
	require.Error(t, err)

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.GreaterOrEqual(t, len(regErr.Diagnostics), 3)
	assert.Equal(t, 0, router.Len(), "a failed registration must not touch the route set")
}

func TestRouterRegisterSemanticFailure(t *testing.T) {
	t.Parallel()

	router := New()
	err := router.Register("bad", "{a?} {b}")
	require.Error(t, err)

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	require.Len(t, regErr.Diagnostics, 1)
}

func TestRouterIndependentRegistrations(t *testing.T) {
	t.Parallel()

	// One pattern's failure never affects another's registration.
	router := New()
	assert.Error(t, router.Register("bad", "{*x} {y}"))
	assert.NoError(t, router.Register("good", "status"))
	assert.Equal(t, 1, router.Len())
	assert.Equal(t, []string{"good"}, router.Names())
}

func TestRouterCustomConverter(t *testing.T) {
	t.Parallel()

	router := New()
	require.NoError(t, router.Converters().RegisterEnum("env", "dev", "prod"))
	require.NoError(t, router.Register("deploy", "deploy {target:env}"))

	result, ok := router.Dispatch([]string{"deploy", "PROD"})
	require.True(t, ok)
	got, found := result.Bindings.Lookup("target")
	require.True(t, found)
	assert.Equal(t, "prod", got)

	_, ok = router.Dispatch([]string{"deploy", "moon"})
	assert.False(t, ok)
}

func TestMustRegisterPanicsOnBadPattern(t *testing.T) {
	t.Parallel()

	router := New()
	assert.Panics(t, func() {
		router.MustRegister("bad", "test {")
	})
	assert.NotPanics(t, func() {
		router.MustRegister("ok", "test {x}")
	})
}

func TestCheckSet(t *testing.T) {
	t.Parallel()

	set := &RouteSet{
		Name: "demo",
		Routes: []RouteDef{
			{Name: "ok", Pattern: "status"},
			{Name: "syntax", Pattern: "test {"},
			{Name: "semantic", Pattern: "{a?} {b}"},
		},
	}

	reports := CheckSet(set)
	require.Len(t, reports, 3)
	assert.Empty(t, reports[0].Diagnostics)
	assert.NotEmpty(t, reports[1].Diagnostics)
	assert.NotEmpty(t, reports[2].Diagnostics)
}

func TestStarterSetRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "example.routes.yaml")
	require.NoError(t, WriteStarterSet(path))

	reports, err := CheckFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, reports)
	for _, r := range reports {
		assert.Empty(t, r.Diagnostics, "starter pattern %q must be clean", r.Pattern)
	}

	router, err := LoadFile(path)
	require.NoError(t, err)

	result, ok := router.Dispatch([]string{"deploy", "dev", "--version", "1.2"})
	require.True(t, ok)
	assert.Equal(t, "deploy", result.Name)
	assert.Equal(t, "1.2", result.Bindings.String("tag"))
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.routes.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestReadRouteSetRejectsBadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("routes: {not a list"), 0o644))

	_, err := ReadRouteSet(path)
	assert.Error(t, err)
}
