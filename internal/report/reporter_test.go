package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "revisit.dev/pkg/revisit/internal/model"
)

func TestState_TracksInnermostContextOnly(t *testing.T) {
	var s State

	require.NoError(t, s.StartReporter())
	require.NoError(t, s.StartContext("outer"))
	require.NoError(t, s.StartContext("inner"))

	assert.Equal(t, "inner", s.CurrentContext)
	assert.True(t, s.ContextOpen)

	require.NoError(t, s.EndContext())
	assert.False(t, s.ContextOpen)
	assert.Equal(t, "inner", s.CurrentContext)
}

func TestState_EndTestClearsCurrentTest(t *testing.T) {
	var s State

	require.NoError(t, s.StartTest("adds numbers"))
	assert.Equal(t, "adds numbers", s.CurrentTest)

	require.NoError(t, s.EndTest())
	assert.Empty(t, s.CurrentTest)
}

func TestState_AnyFailedIsMonotonic(t *testing.T) {
	var s State

	require.NoError(t, s.StartReporter())
	assert.False(t, s.AnyFailed)

	require.NoError(t, s.AddResult(m.Expectation{Outcome: m.Failure}))
	assert.True(t, s.AnyFailed)

	require.NoError(t, s.AddResult(m.Expectation{Outcome: m.Success}))
	assert.True(t, s.AnyFailed, "a later success must not clear the flag")

	require.NoError(t, s.EndReporter())
	assert.True(t, s.AnyFailed, "the flag survives the end of the session")

	require.NoError(t, s.StartReporter())
	assert.False(t, s.AnyFailed, "only a new session resets the flag")
}

func TestState_ErrorResultCountsAsFailed(t *testing.T) {
	var s State

	require.NoError(t, s.AddResult(m.Expectation{Outcome: m.Error}))
	assert.True(t, s.AnyFailed)
}

func TestState_PendingDoesNotFail(t *testing.T) {
	var s State

	require.NoError(t, s.AddResult(m.Expectation{Outcome: m.Pending}))
	assert.False(t, s.AnyFailed)
}
