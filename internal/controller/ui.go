// Package controller provides the user-facing surfaces of a watch session:
// a plain text UI and an interactive TUI.
package controller

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "revisit.dev/pkg/revisit/internal/model"
	"revisit.dev/pkg/revisit/internal/watch"
)

// UI is the interface a watch session drives. Implementations can use
// different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // blocks until the user closes the UI (no-op for SimpleUI)
	DisplayWatchStarted(ctx context.Context, roots []m.Path, interval time.Duration)
	DisplayChanges(ctx context.Context, changes watch.ChangeSet)
	DisplayRunCompleted(ctx context.Context, summary m.RunSummary, runErr error)
	DisplaySessionSummary(ctx context.Context, runs, redRuns int)
}

// NewUI picks the UI implementation: interactive terminals get the TUI,
// everything else the plain printer.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
