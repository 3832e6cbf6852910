// Package model defines the data structures shared by the test engine.
package model

import "strings"

// Outcome classifies a single expectation result.
type Outcome int

const (
	// Success indicates the predicate held for the subject value.
	Success Outcome = iota
	// Failure indicates the predicate did not hold (expected vs. actual differ).
	Failure
	// Pending indicates the check was declared but not implemented.
	Pending
	// Error indicates the check body raised an uncaught fault.
	Error
)

// String returns the lowercase tag used in reports and logs.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Pending:
		return "pending"
	case Error:
		return "error"
	}

	return "unknown"
}

// Expectation is the canonical outcome record produced by every check.
// It is immutable once submitted to a reporter.
type Expectation struct {
	Outcome        Outcome `yaml:"outcome"`
	FailureMessage string  `yaml:"failure_message"`
	SuccessMessage string  `yaml:"success_message"`
	CallLabel      string  `yaml:"call_label"`
	Info           string  `yaml:"info,omitempty"`
}

// Failed reports whether the record counts against the suite (failures and
// errors both do, pending does not).
func (e Expectation) Failed() bool {
	return e.Outcome == Failure || e.Outcome == Error
}

// Message returns the message matching the outcome: the failure message for
// failing/erroring records, the success message otherwise.
func (e Expectation) Message() string {
	if e.Failed() {
		return e.FailureMessage
	}

	return e.SuccessMessage
}

// Decorate prefixes both message fields with the subject's label and, when
// info is non-empty, appends it to both on a new line.
func (e Expectation) Decorate(label, info string) Expectation {
	if strings.TrimSpace(label) != "" {
		e.FailureMessage = label + " " + e.FailureMessage
		e.SuccessMessage = label + " " + e.SuccessMessage
	}

	if info != "" {
		e.FailureMessage += "\n" + info
		e.SuccessMessage += "\n" + info
		e.Info = info
	}

	return e
}

// FileLog holds the ordered expectation results collected for one suite file.
type FileLog struct {
	File    Path          `yaml:"file"`
	Results []Expectation `yaml:"results"`
}

// RunLog is the artifact a finished run exports: per-file result logs in
// load order.
type RunLog struct {
	Files []FileLog `yaml:"files"`
}

// Add appends a result to the log entry for file, creating the entry when
// the file is seen for the first time.
func (l *RunLog) Add(file Path, result Expectation) {
	for i := range l.Files {
		if l.Files[i].File == file {
			l.Files[i].Results = append(l.Files[i].Results, result)
			return
		}
	}

	l.Files = append(l.Files, FileLog{File: file, Results: []Expectation{result}})
}

// Summary tallies the log by outcome.
func (l *RunLog) Summary() RunSummary {
	var s RunSummary

	for _, f := range l.Files {
		s.Files++

		for _, r := range f.Results {
			switch r.Outcome {
			case Success:
				s.Passed++
			case Failure:
				s.Failed++
			case Pending:
				s.Pending++
			case Error:
				s.Errors++
			}
		}
	}

	return s
}

// RunSummary is the per-run tally shown by UIs and persisted in the watch
// session history.
type RunSummary struct {
	Files   int
	Passed  int
	Failed  int
	Pending int
	Errors  int
}

// Total returns the number of expectation results in the run.
func (s RunSummary) Total() int {
	return s.Passed + s.Failed + s.Pending + s.Errors
}

// Green reports whether the run had no failures and no errors. Pending
// checks do not turn a run red, but they are reported as their own
// category so suites are not falsely green.
func (s RunSummary) Green() bool {
	return s.Failed == 0 && s.Errors == 0
}
