package report

import (
	m "revisit.dev/pkg/revisit/internal/model"
)

// MultiReporter fans every protocol call out to its members in registration
// order, synchronously. The first member error propagates immediately and
// fails the run; a broken member is never silently skipped over.
type MultiReporter struct {
	members []Reporter
}

// NewMultiReporter constructs a fan-out over the given reporters.
func NewMultiReporter(members ...Reporter) *MultiReporter {
	return &MultiReporter{members: members}
}

// Add appends a reporter to the fan-out.
func (r *MultiReporter) Add(member Reporter) {
	r.members = append(r.members, member)
}

// StartFile forwards the file announcement to every member that cares.
func (r *MultiReporter) StartFile(file m.Path) {
	for _, member := range r.members {
		if fa, ok := member.(FileAware); ok {
			fa.StartFile(file)
		}
	}
}

// StartReporter implements Reporter.
func (r *MultiReporter) StartReporter() error {
	return r.each(Reporter.StartReporter)
}

// StartContext implements Reporter.
func (r *MultiReporter) StartContext(description string) error {
	return r.each(func(member Reporter) error { return member.StartContext(description) })
}

// StartTest implements Reporter.
func (r *MultiReporter) StartTest(description string) error {
	return r.each(func(member Reporter) error { return member.StartTest(description) })
}

// AddResult implements Reporter.
func (r *MultiReporter) AddResult(result m.Expectation) error {
	return r.each(func(member Reporter) error { return member.AddResult(result) })
}

// EndTest implements Reporter.
func (r *MultiReporter) EndTest() error {
	return r.each(Reporter.EndTest)
}

// EndContext implements Reporter.
func (r *MultiReporter) EndContext() error {
	return r.each(Reporter.EndContext)
}

// EndReporter implements Reporter.
func (r *MultiReporter) EndReporter() error {
	return r.each(Reporter.EndReporter)
}

func (r *MultiReporter) each(call func(Reporter) error) error {
	for _, member := range r.members {
		if err := call(member); err != nil {
			return err
		}
	}

	return nil
}
