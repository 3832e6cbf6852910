package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"revisit.dev/pkg/revisit/internal/adapter"
	m "revisit.dev/pkg/revisit/internal/model"
)

// DefaultInterval is the poll interval used when none is configured.
// Polling is deliberately coarse: the loop favors low overhead over low
// latency.
const DefaultInterval = 2 * time.Second

// Callback receives the change sets of one poll. Returning anything other
// than true stops the loop.
type Callback func(added, deleted, modified []m.Path) bool

// Watcher repeatedly snapshots one or more root paths and invokes a
// callback whenever the fingerprints differ from the previous poll.
type Watcher struct {
	store    *Store
	roots    []m.Path
	filter   Filter
	interval time.Duration
}

// NewWatcher constructs a Watcher. An interval of zero or less falls back
// to DefaultInterval.
func NewWatcher(fsAdapter adapter.SuiteFSAdapter, roots []m.Path, filter Filter, mode Mode, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Watcher{
		store:    NewStore(fsAdapter, mode),
		roots:    roots,
		filter:   filter,
		interval: interval,
	}
}

// Run polls until the callback returns false or ctx is cancelled. The
// previous snapshot is replaced on every iteration, changed or not, so
// fingerprint staleness never accumulates. A panic inside the callback is
// tolerated and treated as "keep going": a buggy callback must not kill a
// long-running watch session.
func (w *Watcher) Run(ctx context.Context, cb Callback) error {
	prev, err := w.snapshot()
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}

	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		curr, err := w.snapshot()
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}

		cs := Diff(prev, curr)
		prev = curr

		if cs.Any() {
			slog.Debug("changes detected",
				"added", len(cs.Added), "deleted", len(cs.Deleted), "modified", len(cs.Modified))

			if !w.invoke(cb, cs) {
				return nil
			}
		}

		timer.Reset(w.interval)
	}
}

// invoke runs the callback, recovering any panic. A panicking callback
// keeps the loop alive.
func (w *Watcher) invoke(cb Callback, cs ChangeSet) (keepGoing bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("watch callback panicked", "panic", r)

			keepGoing = true
		}
	}()

	return cb(cs.Added, cs.Deleted, cs.Modified)
}

// snapshot merges the per-root snapshots of one poll into a single mapping.
func (w *Watcher) snapshot() (Snapshot, error) {
	merged := make(Snapshot)

	for _, root := range w.roots {
		snap, err := w.store.Snapshot(root, w.filter)
		if err != nil {
			return nil, err
		}

		for path, print := range snap {
			merged[path] = print
		}
	}

	return merged, nil
}
