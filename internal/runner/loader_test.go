package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revisit.dev/pkg/revisit/internal/adapter"
	m "revisit.dev/pkg/revisit/internal/model"
	"revisit.dev/pkg/revisit/internal/report"
)

func writeSuiteDir(t *testing.T, names ...string) m.Path {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("// suite file\n"), 0o600))
	}

	return m.Path(dir)
}

// orderRegistry records evaluation order for every registered name.
func orderRegistry(names []string, order *[]string) *Registry {
	registry := NewRegistry()

	for _, name := range names {
		name := name
		registry.Register(name, func(*Controller) error {
			*order = append(*order, name)
			return nil
		})
	}

	return registry
}

func TestLoader_HelpersLoadBeforeTestsAlphabetically(t *testing.T) {
	names := []string{"test_zeta.go", "helper_b.go", "test_alpha.go", "Helper_a.go", "notes.txt"}
	dir := writeSuiteDir(t, names...)

	var order []string

	registry := orderRegistry([]string{"Helper_a.go", "helper_b.go", "test_alpha.go", "test_zeta.go"}, &order)
	loader := NewLoader(adapter.NewLocalSuiteFSAdapter(), registry)

	c := NewController(report.NewCollector())
	require.NoError(t, loader.Load(dir, nil, c, NewScope()))

	assert.Equal(t, []string{"Helper_a.go", "helper_b.go", "test_alpha.go", "test_zeta.go"}, order)
}

func TestLoader_FilterAppliesToStrippedTestNames(t *testing.T) {
	dir := writeSuiteDir(t, "helper_env.go", "test_math.go", "test_strings.go")

	var order []string

	registry := orderRegistry([]string{"helper_env.go", "test_math.go", "test_strings.go"}, &order)
	loader := NewLoader(adapter.NewLocalSuiteFSAdapter(), registry)

	filter := func(name string) bool { return strings.Contains(name, "math") }

	c := NewController(report.NewCollector())
	require.NoError(t, loader.Load(dir, filter, c, NewScope()))

	// Helpers always load as a full set; only test files are filtered.
	assert.Equal(t, []string{"helper_env.go", "test_math.go"}, order)
}

func TestLoader_ZeroTestFilesIsFatal(t *testing.T) {
	dir := writeSuiteDir(t, "helper_env.go")

	loader := NewLoader(adapter.NewLocalSuiteFSAdapter(), NewRegistry())

	c := NewController(report.NewCollector())
	err := loader.Load(dir, nil, c, NewScope())

	require.ErrorIs(t, err, ErrNoTestFiles)
}

func TestLoader_FilterCanEmptyTheTestSet(t *testing.T) {
	dir := writeSuiteDir(t, "test_math.go")

	loader := NewLoader(adapter.NewLocalSuiteFSAdapter(), NewRegistry())

	filter := func(string) bool { return false }

	c := NewController(report.NewCollector())
	err := loader.Load(dir, filter, c, NewScope())

	require.ErrorIs(t, err, ErrNoTestFiles)
}

func TestLoader_MissingDirFailsFast(t *testing.T) {
	loader := NewLoader(adapter.NewLocalSuiteFSAdapter(), NewRegistry())

	c := NewController(report.NewCollector())
	err := loader.Load(m.Path("/no/such/dir"), nil, c, NewScope())

	require.Error(t, err)
}

func TestLoader_NilHandlesAreInvalid(t *testing.T) {
	dir := writeSuiteDir(t, "test_math.go")
	loader := NewLoader(adapter.NewLocalSuiteFSAdapter(), NewRegistry())

	err := loader.Load(dir, nil, nil, NewScope())
	require.ErrorIs(t, err, ErrInvalidScope)

	err = loader.Load(dir, nil, NewController(report.NewCollector()), nil)
	require.ErrorIs(t, err, ErrInvalidScope)
}

func TestLoader_UnregisteredSuiteFileIsFatal(t *testing.T) {
	dir := writeSuiteDir(t, "test_math.go")

	loader := NewLoader(adapter.NewLocalSuiteFSAdapter(), NewRegistry())

	c := NewController(report.NewCollector())
	err := loader.Load(dir, nil, c, NewScope())

	require.ErrorIs(t, err, ErrNoSuchSuite)
}

func TestRunSuite_CollectsFileTaggedResults(t *testing.T) {
	dir := writeSuiteDir(t, "helper_env.go", "test_math.go")

	registry := NewRegistry()

	registry.Register("helper_env.go", func(c *Controller) error {
		c.Scope().Define("answer", 42)
		return nil
	})

	registry.Register("test_math.go", func(c *Controller) error {
		if err := c.Check("passes", func(s *Scope) error {
			answer, _ := s.Lookup("answer")
			return c.Expect(answer, Equals(42))
		}); err != nil {
			return err
		}

		return c.Check("fails", func(*Scope) error {
			return c.Expect(1, Equals(2))
		})
	})

	collector := report.NewCollector()
	loader := NewLoader(adapter.NewLocalSuiteFSAdapter(), registry)

	require.NoError(t, RunSuite(loader, NewController(collector), dir, nil))

	log := collector.Log()
	require.Len(t, log.Files, 1)
	assert.Equal(t, filepath.Base(string(log.Files[0].File)), "test_math.go")

	require.Len(t, log.Files[0].Results, 2)
	assert.Equal(t, m.Success, log.Files[0].Results[0].Outcome)
	assert.Equal(t, m.Failure, log.Files[0].Results[1].Outcome)

	summary := log.Summary()
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.False(t, summary.Green())
}
