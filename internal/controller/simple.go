package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	m "revisit.dev/pkg/revisit/internal/model"
	"revisit.dev/pkg/revisit/internal/watch"
)

// SimpleUI implements UI with plain line output through a cobra Command.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayWatchStarted announces the watch session.
func (s *SimpleUI) DisplayWatchStarted(ctx context.Context, roots []m.Path, interval time.Duration) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("watching %d path(s), polling every %s\n", len(roots), interval)
}

// DisplayChanges prints the change counts of one poll.
func (s *SimpleUI) DisplayChanges(ctx context.Context, changes watch.ChangeSet) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\nchanges: %d added, %d deleted, %d modified\n",
		len(changes.Added), len(changes.Deleted), len(changes.Modified))
}

// DisplayRunCompleted prints the outcome of one suite run.
func (s *SimpleUI) DisplayRunCompleted(ctx context.Context, summary m.RunSummary, runErr error) {
	if err := ctx.Err(); err != nil {
		return
	}

	if runErr != nil {
		s.printf("run aborted: %v\n", runErr)
		return
	}

	s.printf("run finished: %d passed, %d failed, %d pending, %d errors\n",
		summary.Passed, summary.Failed, summary.Pending, summary.Errors)
}

// DisplaySessionSummary prints the tally of the whole watch session.
func (s *SimpleUI) DisplaySessionSummary(ctx context.Context, runs, redRuns int) {
	if err := ctx.Err(); err != nil && err != context.Canceled {
		return
	}

	s.printf("\nsession: %d run(s), %d red\n", runs, redRuns)
}

// printf writes formatted output to the underlying cobra command's stdout.
func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
