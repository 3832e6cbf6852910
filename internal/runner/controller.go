// Package runner implements the test lifecycle: scopes, the controller
// that drives reporter callbacks in order, expectation submission, and the
// suite loader.
package runner

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	m "revisit.dev/pkg/revisit/internal/model"
	"revisit.dev/pkg/revisit/internal/report"
)

// pendingDefaultReason is used when a pending marker carries no usable
// reason.
const pendingDefaultReason = "unknown"

// Controller tracks the current grouping and check and forwards finished
// expectation results to its reporter. The reporter is an explicit field,
// not process-wide state; temporary substitution goes through Swap, which
// returns a restore func meant to run via defer on every exit path.
//
// Grouping state is deliberately shallow: only the innermost context
// description is tracked, so nested groupings do not compose a full
// description path. This is a known surprising behavior, preserved on
// purpose.
type Controller struct {
	rep   report.Reporter
	scope *Scope
}

// NewController constructs a Controller reporting to rep.
func NewController(rep report.Reporter) *Controller {
	return &Controller{rep: rep, scope: NewScope()}
}

// Reporter returns the currently active reporter.
func (c *Controller) Reporter() report.Reporter {
	return c.rep
}

// Swap installs rep as the active reporter and returns a func restoring the
// previous one. Callers defer the restore so the previous reporter comes
// back on every exit path, including panics.
func (c *Controller) Swap(rep report.Reporter) (restore func()) {
	prev := c.rep
	c.rep = rep

	return func() { c.rep = prev }
}

// Scope returns the scope the controller currently evaluates against.
func (c *Controller) Scope() *Scope {
	return c.scope
}

// EnterFile points the controller at the scope a suite file is evaluated
// against and announces the file to file-aware reporters.
func (c *Controller) EnterFile(file m.Path, scope *Scope) {
	c.scope = scope

	if fa, ok := c.rep.(report.FileAware); ok {
		fa.StartFile(file)
	}
}

// Context opens a grouping, runs its body, and closes the grouping again.
// A nil body just opens and closes. Body errors are configuration-level:
// they propagate after the grouping is closed.
func (c *Controller) Context(description string, body func() error) error {
	if err := validateDescription(description); err != nil {
		return err
	}

	if err := c.rep.StartContext(description); err != nil {
		return &ReporterError{Err: err}
	}

	var bodyErr error
	if body != nil {
		prev := c.scope
		c.scope = prev.Child()
		bodyErr = body()
		c.scope = prev
	}

	if err := c.rep.EndContext(); err != nil {
		return &ReporterError{Err: err}
	}

	return bodyErr
}

// Check runs one independently evaluated unit. A nil body is a placeholder
// and submits a pending marker instead of running nothing silently. A fault
// raised by the body (error return or panic) is caught here and converted
// into an Error expectation so sibling checks still run; reporter failures
// are the exception and stay fatal. Every declared check yields exactly one
// terminal record per run.
func (c *Controller) Check(description string, body func(*Scope) error) error {
	if err := validateDescription(description); err != nil {
		return err
	}

	if err := c.rep.StartTest(description); err != nil {
		return &ReporterError{Err: err}
	}

	if err := c.runCheckBody(description, body); err != nil {
		return err
	}

	if err := c.rep.EndTest(); err != nil {
		return &ReporterError{Err: err}
	}

	return nil
}

func (c *Controller) runCheckBody(description string, body func(*Scope) error) error {
	if body == nil {
		return c.Pending("")
	}

	err := c.evaluate(body)
	if err == nil {
		return nil
	}

	if IsReporterError(err) {
		return err
	}

	slog.Debug("check faulted", "check", description, "error", err)

	return c.submit(m.Expectation{
		Outcome:        m.Error,
		FailureMessage: fmt.Sprintf("raised %v", err),
		SuccessMessage: fmt.Sprintf("raised %v", err),
		CallLabel:      "check(" + description + ")",
	})
}

// evaluate runs the body in a fresh child scope, converting panics into
// errors at the check boundary.
func (c *Controller) evaluate(body func(*Scope) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return body(c.scope.Child())
}

// ExpectOption customizes a single expectation submission.
type ExpectOption func(*expectConfig)

type expectConfig struct {
	label string
	info  string
}

// WithLabel names the subject value in both result messages. Without it the
// generic placeholder "value" is used; the engine never synthesizes source
// text for the subject.
func WithLabel(label string) ExpectOption {
	return func(cfg *expectConfig) {
		cfg.label = label
	}
}

// WithInfo appends diagnostic info to both result messages on a new line.
func WithInfo(info string) ExpectOption {
	return func(cfg *expectConfig) {
		cfg.info = info
	}
}

// Expect evaluates pred against actual and forwards the decorated record to
// the active reporter. A failing predicate is data, not a fault: Expect
// errors only for malformed input or a broken reporter.
func (c *Controller) Expect(actual interface{}, pred Predicate, opts ...ExpectOption) error {
	if pred == nil {
		return ErrNoPredicate
	}

	cfg := expectConfig{label: "value"}
	for _, opt := range opts {
		opt(&cfg)
	}

	if strings.TrimSpace(cfg.label) == "" {
		cfg.label = "value"
	}

	ok, failureMessage, successMessage := pred(actual)

	outcome := m.Failure
	if ok {
		outcome = m.Success
	}

	exp := m.Expectation{
		Outcome:        outcome,
		FailureMessage: failureMessage,
		SuccessMessage: successMessage,
		CallLabel:      callLabel(cfg.label),
	}

	return c.submit(exp.Decorate(cfg.label, cfg.info))
}

// FailCheck fabricates a permanently failing expectation without evaluating
// any predicate, short-circuiting the current check explicitly.
func (c *Controller) FailCheck(message string) error {
	if strings.TrimSpace(message) == "" {
		message = "forced failure"
	}

	return c.submit(m.Expectation{
		Outcome:        m.Failure,
		FailureMessage: message,
		SuccessMessage: message,
		CallLabel:      "fail",
	})
}

// Pending fabricates a pending marker carrying a free-text reason,
// defaulting to "unknown" when none is supplied.
func (c *Controller) Pending(reason string) error {
	if strings.TrimSpace(reason) == "" {
		reason = pendingDefaultReason
	}

	message := "pending (" + reason + ")"

	return c.submit(m.Expectation{
		Outcome:        m.Pending,
		FailureMessage: message,
		SuccessMessage: message,
		CallLabel:      "pending",
	})
}

func (c *Controller) submit(exp m.Expectation) error {
	if err := c.rep.AddResult(exp); err != nil {
		return &ReporterError{Err: err}
	}

	return nil
}

// callLabel captures a textual representation of the originating call for
// traceability: the subject label plus the caller's source position.
func callLabel(label string) string {
	if _, file, line, ok := runtime.Caller(2); ok {
		return fmt.Sprintf("expect(%s) at %s:%d", label, filepath.Base(file), line)
	}

	return fmt.Sprintf("expect(%s)", label)
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w, got %q", ErrBadDescription, description)
	}

	return nil
}
