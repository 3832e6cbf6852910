package report

import (
	m "revisit.dev/pkg/revisit/internal/model"
)

// Collector aggregates expectation results without side effects. It ignores
// context and test markers for output purposes but stamps every incoming
// result with the suite file currently being processed; the accumulated,
// file-scoped run log is its only externally meaningful state.
type Collector struct {
	State

	current m.Path
	log     m.RunLog
}

// NewCollector constructs an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// StartFile records which suite file subsequent results belong to.
func (c *Collector) StartFile(file m.Path) {
	c.current = file
}

// StartReporter resets the session state and discards the previous log.
func (c *Collector) StartReporter() error {
	c.log = m.RunLog{}
	c.current = ""

	return c.State.StartReporter()
}

// AddResult appends the result to the current file's ordered log.
func (c *Collector) AddResult(result m.Expectation) error {
	c.log.Add(c.current, result)

	return c.State.AddResult(result)
}

// Log returns the accumulated run log.
func (c *Collector) Log() m.RunLog {
	return c.log
}
