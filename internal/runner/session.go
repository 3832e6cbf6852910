package runner

import (
	m "revisit.dev/pkg/revisit/internal/model"
)

// RunSuite drives one full reporter session over a suite directory: it
// starts the reporter, loads helpers then test files into a fresh root
// scope, and ends the reporter. A fatal load error aborts the session
// immediately and propagates.
func RunSuite(l *Loader, c *Controller, dir m.Path, filter NameFilter) error {
	if c == nil {
		return ErrInvalidScope
	}

	rep := c.Reporter()

	if err := rep.StartReporter(); err != nil {
		return &ReporterError{Err: err}
	}

	if err := l.Load(dir, filter, c, NewScope()); err != nil {
		return err
	}

	if err := rep.EndReporter(); err != nil {
		return &ReporterError{Err: err}
	}

	return nil
}
