// Package report defines the reporter protocol every output sink
// implements, the reusable reporter state, and the composite reporters
// (fan-out and aggregating collector).
package report

import (
	m "revisit.dev/pkg/revisit/internal/model"
)

// Reporter is the protocol driven by the lifecycle controller. Calls arrive
// in session order: StartReporter, then for each grouping StartContext,
// StartTest/AddResult/EndTest per check, EndContext, and finally
// EndReporter. Implementations may no-op any call; an error return fails
// the suite run.
type Reporter interface {
	StartReporter() error
	StartContext(description string) error
	StartTest(description string) error
	AddResult(result m.Expectation) error
	EndTest() error
	EndContext() error
	EndReporter() error
}

// FileAware is an optional side-interface for reporters that care which
// suite file results belong to. The loader announces each file before
// evaluating it; composites forward the announcement to their members.
type FileAware interface {
	StartFile(file m.Path)
}

// State is the bookkeeping every reporter instance carries: the most recent
// context and test descriptions, whether a context is open, and whether any
// result failed so far. AnyFailed is monotonic within a session; only
// StartReporter resets it.
//
// Note that State tracks only the innermost context description. Nested
// groupings do not compose a full description path; this matches the
// engine's grouping semantics (see the runner package).
type State struct {
	CurrentContext string
	CurrentTest    string
	AnyFailed      bool
	ContextOpen    bool
}

// StartReporter resets the session state, including the AnyFailed flag.
func (s *State) StartReporter() error {
	*s = State{}
	return nil
}

// StartContext records the new innermost context.
func (s *State) StartContext(description string) error {
	s.CurrentContext = description
	s.ContextOpen = true

	return nil
}

// StartTest records the current check.
func (s *State) StartTest(description string) error {
	s.CurrentTest = description
	return nil
}

// AddResult latches AnyFailed on failing or erroring results.
func (s *State) AddResult(result m.Expectation) error {
	if result.Failed() {
		s.AnyFailed = true
	}

	return nil
}

// EndTest clears the current-test marker.
func (s *State) EndTest() error {
	s.CurrentTest = ""
	return nil
}

// EndContext closes the current context.
func (s *State) EndContext() error {
	s.ContextOpen = false
	return nil
}

// EndReporter is a no-op; the accumulated state stays readable after the
// session ends.
func (s *State) EndReporter() error {
	return nil
}
