package runner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "revisit.dev/pkg/revisit/internal/model"
	"revisit.dev/pkg/revisit/internal/report"
)

func collectedResults(t *testing.T, collector *report.Collector) []m.Expectation {
	t.Helper()

	var results []m.Expectation
	for _, file := range collector.Log().Files {
		results = append(results, file.Results...)
	}

	return results
}

func newTestController() (*Controller, *report.Collector) {
	collector := report.NewCollector()
	c := NewController(collector)
	c.EnterFile("test_example.go", NewScope())

	return c, collector
}

func TestController_PassingAndFailingCheckInOrder(t *testing.T) {
	c, collector := newTestController()

	err := c.Check("adds", func(*Scope) error {
		return c.Expect(2, Equals(2))
	})
	require.NoError(t, err)

	err = c.Check("subtracts", func(*Scope) error {
		return c.Expect(1, Equals(2))
	})
	require.NoError(t, err)

	results := collectedResults(t, collector)
	require.Len(t, results, 2)
	assert.Equal(t, m.Success, results[0].Outcome)
	assert.Equal(t, m.Failure, results[1].Outcome)
	assert.True(t, collector.AnyFailed)
}

func TestController_BodylessCheckIsPendingUnknown(t *testing.T) {
	c, collector := newTestController()

	require.NoError(t, c.Check("not written yet", nil))

	results := collectedResults(t, collector)
	require.Len(t, results, 1)
	assert.Equal(t, m.Pending, results[0].Outcome)
	assert.Contains(t, results[0].FailureMessage, "unknown")
}

func TestController_PendingReasonDefaultsWhenBlank(t *testing.T) {
	c, collector := newTestController()

	require.NoError(t, c.Pending("   "))
	require.NoError(t, c.Pending("waiting on fixtures"))

	results := collectedResults(t, collector)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].FailureMessage, "unknown")
	assert.Contains(t, results[1].FailureMessage, "waiting on fixtures")
}

func TestController_PanickingBodyBecomesErrorResult(t *testing.T) {
	c, collector := newTestController()

	err := c.Check("explodes", func(*Scope) error {
		panic("boom")
	})
	require.NoError(t, err)

	// Sibling checks still run.
	err = c.Check("survives", func(*Scope) error {
		return c.Expect(1, Equals(1))
	})
	require.NoError(t, err)

	results := collectedResults(t, collector)
	require.Len(t, results, 2)
	assert.Equal(t, m.Error, results[0].Outcome)
	assert.Contains(t, results[0].FailureMessage, "boom")
	assert.Equal(t, m.Success, results[1].Outcome)
}

func TestController_BodyErrorBecomesErrorResult(t *testing.T) {
	c, collector := newTestController()

	err := c.Check("faults", func(*Scope) error {
		return errors.New("nil map write")
	})
	require.NoError(t, err)

	results := collectedResults(t, collector)
	require.Len(t, results, 1)
	assert.Equal(t, m.Error, results[0].Outcome)
}

func TestController_EmptyDescriptionIsConfigurationFault(t *testing.T) {
	c, _ := newTestController()

	err := c.Check("", func(*Scope) error { return nil })
	require.ErrorIs(t, err, ErrBadDescription)

	err = c.Context("  ", nil)
	require.ErrorIs(t, err, ErrBadDescription)
}

func TestController_ExpectValidatesInput(t *testing.T) {
	c, collector := newTestController()

	err := c.Expect(1, nil)
	require.ErrorIs(t, err, ErrNoPredicate)

	assert.Empty(t, collectedResults(t, collector))
}

func TestController_ExpectDecoratesMessages(t *testing.T) {
	c, collector := newTestController()

	err := c.Expect(7, Equals(5), WithLabel("the answer"), WithInfo("computed in setup"))
	require.NoError(t, err)

	results := collectedResults(t, collector)
	require.Len(t, results, 1)

	result := results[0]
	assert.Equal(t, m.Failure, result.Outcome)
	assert.Contains(t, result.FailureMessage, "the answer should equal")
	assert.Contains(t, result.FailureMessage, "\ncomputed in setup")
	assert.Contains(t, result.SuccessMessage, "the answer should not equal")
	assert.Contains(t, result.SuccessMessage, "\ncomputed in setup")
	assert.Contains(t, result.CallLabel, "expect(the answer)")
}

func TestController_ExpectLabelFallsBackToValue(t *testing.T) {
	c, collector := newTestController()

	require.NoError(t, c.Expect(1, Equals(1)))
	require.NoError(t, c.Expect(1, Equals(1), WithLabel("  ")))

	for _, result := range collectedResults(t, collector) {
		assert.Contains(t, result.SuccessMessage, "value should")
	}
}

func TestController_FailCheckFabricatesFailure(t *testing.T) {
	c, collector := newTestController()

	require.NoError(t, c.FailCheck("unreachable configuration"))
	require.NoError(t, c.FailCheck(""))

	results := collectedResults(t, collector)
	require.Len(t, results, 2)
	assert.Equal(t, m.Failure, results[0].Outcome)
	assert.Equal(t, "unreachable configuration", results[0].FailureMessage)
	assert.Equal(t, m.Failure, results[1].Outcome)
	assert.Equal(t, "forced failure", results[1].FailureMessage)
}

func TestController_ContextTracksInnermostDescriptionOnly(t *testing.T) {
	c, collector := newTestController()

	err := c.Context("outer", func() error {
		return c.Context("inner", func() error {
			assert.Equal(t, "inner", collector.CurrentContext)
			return nil
		})
	})
	require.NoError(t, err)

	// Innermost-only composition: the outer description is not restored.
	assert.Equal(t, "inner", collector.CurrentContext)
	assert.False(t, collector.ContextOpen)
}

func TestController_CheckScopeDoesNotLeak(t *testing.T) {
	c, _ := newTestController()
	c.Scope().Define("shared", "from-helper")

	err := c.Check("sees helper bindings", func(s *Scope) error {
		value, ok := s.Lookup("shared")
		require.True(t, ok)
		assert.Equal(t, "from-helper", value)

		s.Define("local", true)

		return nil
	})
	require.NoError(t, err)

	_, ok := c.Scope().Lookup("local")
	assert.False(t, ok)
}

func TestController_SwapRestoresOnPanic(t *testing.T) {
	c, collector := newTestController()
	replacement := report.NewCollector()

	func() {
		defer func() { _ = recover() }()

		restore := c.Swap(replacement)
		defer restore()

		require.Same(t, report.Reporter(replacement), c.Reporter())
		panic("abnormal exit")
	}()

	assert.Same(t, report.Reporter(collector), c.Reporter())
}

// failingReporter errors on AddResult to simulate a broken sink.
type failingReporter struct {
	report.State
}

func (r *failingReporter) AddResult(m.Expectation) error {
	return errors.New("sink closed")
}

func TestController_ReporterFailureIsFatal(t *testing.T) {
	c := NewController(&failingReporter{})
	c.EnterFile("test_example.go", NewScope())

	err := c.Check("any", func(*Scope) error {
		return c.Expect(1, Equals(1))
	})

	require.Error(t, err)
	assert.True(t, IsReporterError(err))
}
