package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	m "revisit.dev/pkg/revisit/internal/model"
)

var (
	contextStyle = lipgloss.NewStyle().Bold(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// ConsoleReporter streams results to a writer as they arrive and prints a
// summary table when the session ends.
type ConsoleReporter struct {
	State

	out     io.Writer
	summary m.RunSummary
}

// NewConsoleReporter constructs a ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// StartReporter resets the session state and the summary tally.
func (r *ConsoleReporter) StartReporter() error {
	r.summary = m.RunSummary{}

	return r.State.StartReporter()
}

// StartContext prints the grouping header.
func (r *ConsoleReporter) StartContext(description string) error {
	if err := r.State.StartContext(description); err != nil {
		return err
	}

	return r.printf("\n%s\n", contextStyle.Render(description))
}

// AddResult prints one line per result, styled by outcome.
func (r *ConsoleReporter) AddResult(result m.Expectation) error {
	if err := r.State.AddResult(result); err != nil {
		return err
	}

	var line string

	switch result.Outcome {
	case m.Success:
		r.summary.Passed++
		line = passStyle.Render("✓ " + result.SuccessMessage)
	case m.Failure:
		r.summary.Failed++
		line = failStyle.Render("✗ " + result.FailureMessage)
	case m.Pending:
		r.summary.Pending++
		line = pendingStyle.Render("~ " + result.FailureMessage)
	case m.Error:
		r.summary.Errors++
		line = errorStyle.Render("! " + result.FailureMessage)
	}

	prefix := ""
	if r.CurrentTest != "" {
		prefix = r.CurrentTest + ": "
	}

	return r.printf("  %s%s\n", prefix, line)
}

// EndReporter prints the summary table for the finished session.
func (r *ConsoleReporter) EndReporter() error {
	return r.printf("\n%s", renderSummaryTable(r.summary))
}

// Summary returns the tally of the current (or last finished) session.
func (r *ConsoleReporter) Summary() m.RunSummary {
	return r.summary
}

func (r *ConsoleReporter) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(r.out, format, args...)
	return err
}

func renderSummaryTable(s m.RunSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Passed", "Failed", "Pending", "Errors"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	table.Append([]string{
		fmt.Sprintf("%d", s.Passed),
		fmt.Sprintf("%d", s.Failed),
		fmt.Sprintf("%d", s.Pending),
		fmt.Sprintf("%d", s.Errors),
	})

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", s.Total()),
		"", "", "",
	})

	table.Render()

	return tableBuffer.String()
}
