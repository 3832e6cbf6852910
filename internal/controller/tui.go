package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "revisit.dev/pkg/revisit/internal/model"
	"revisit.dev/pkg/revisit/internal/watch"
)

// recentRuns caps how many finished runs the TUI keeps on screen.
const recentRuns = 8

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// TUI implements UI with a Bubble Tea program: a spinner while polling, the
// last detected change set, and a rolling list of run outcomes.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, done: make(chan struct{})}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.program = tea.NewProgram(newWatchModel(), tea.WithOutput(t.output))

	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// Close asks the program to quit.
func (t *TUI) Close(_ context.Context) {
	if t.program != nil {
		t.program.Quit()
	}
}

// Wait blocks until the user quits the TUI or ctx is cancelled.
func (t *TUI) Wait(ctx context.Context) {
	select {
	case <-t.done:
	case <-ctx.Done():
	}
}

// DisplayWatchStarted announces the watch session.
func (t *TUI) DisplayWatchStarted(_ context.Context, roots []m.Path, interval time.Duration) {
	t.send(watchStartedMsg{roots: len(roots), interval: interval})
}

// DisplayChanges shows the change counts of one poll.
func (t *TUI) DisplayChanges(_ context.Context, changes watch.ChangeSet) {
	t.send(changesMsg{changes: changes})
}

// DisplayRunCompleted records the outcome of one suite run.
func (t *TUI) DisplayRunCompleted(_ context.Context, summary m.RunSummary, runErr error) {
	t.send(runMsg{summary: summary, err: runErr})
}

// DisplaySessionSummary records the final tally; the program keeps running
// until the user quits or Close is called.
func (t *TUI) DisplaySessionSummary(_ context.Context, runs, redRuns int) {
	t.send(sessionMsg{runs: runs, redRuns: redRuns})
}

func (t *TUI) send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

type watchStartedMsg struct {
	roots    int
	interval time.Duration
}

type changesMsg struct {
	changes watch.ChangeSet
}

type runMsg struct {
	summary m.RunSummary
	err     error
}

type sessionMsg struct {
	runs    int
	redRuns int
}

// watchModel is the Bubble Tea model behind the watch TUI.
type watchModel struct {
	spin     spinner.Model
	roots    int
	interval time.Duration
	changes  watch.ChangeSet
	runs     []runMsg
	total    int
	ended    bool
	endRuns  int
	endRed   int
	quitting bool
}

func newWatchModel() watchModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return watchModel{spin: spin}
}

func (wm watchModel) Init() tea.Cmd {
	return wm.spin.Tick
}

func (wm watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		wm.spin, cmd = wm.spin.Update(msg)

		return wm, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			wm.quitting = true
			return wm, tea.Quit
		}

		return wm, nil

	case watchStartedMsg:
		wm.roots = msg.roots
		wm.interval = msg.interval

		return wm, nil

	case changesMsg:
		wm.changes = msg.changes
		return wm, nil

	case runMsg:
		wm.total++

		wm.runs = append(wm.runs, msg)
		if len(wm.runs) > recentRuns {
			wm.runs = wm.runs[len(wm.runs)-recentRuns:]
		}

		return wm, nil

	case sessionMsg:
		wm.ended = true
		wm.endRuns = msg.runs
		wm.endRed = msg.redRuns

		return wm, nil
	}

	return wm, nil
}

func (wm watchModel) View() string {
	if wm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("revisit: continuous testing") + "\n\n")

	if wm.ended {
		fmt.Fprintf(&b, "  session over: %d run(s), %d red (press q to exit)\n", wm.endRuns, wm.endRed)
	} else {
		fmt.Fprintf(&b, "  %s watching %d path(s) every %s\n", wm.spin.View(), wm.roots, wm.interval)
	}

	if wm.changes.Any() {
		fmt.Fprintf(&b, "  last change: +%d −%d ~%d\n",
			len(wm.changes.Added), len(wm.changes.Deleted), len(wm.changes.Modified))
	}

	if len(wm.runs) > 0 {
		b.WriteString("\n")

		first := wm.total - len(wm.runs) + 1
		for i, run := range wm.runs {
			b.WriteString("  " + renderRunLine(first+i, run) + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("  q: quit") + "\n")

	return b.String()
}

func renderRunLine(n int, run runMsg) string {
	if run.err != nil {
		return redStyle.Render(fmt.Sprintf("run %d aborted: %v", n, run.err))
	}

	line := fmt.Sprintf("run %d: %d passed, %d failed, %d pending, %d errors",
		n, run.summary.Passed, run.summary.Failed, run.summary.Pending, run.summary.Errors)

	if run.summary.Green() {
		return greenStyle.Render(line)
	}

	return redStyle.Render(line)
}
