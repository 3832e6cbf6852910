// Package watch implements the directory-polling loop that powers
// continuous re-testing: fingerprint snapshots, snapshot diffing and the
// fixed-interval watch loop itself.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"revisit.dev/pkg/revisit/internal/adapter"
	m "revisit.dev/pkg/revisit/internal/model"
)

// Mode selects how file fingerprints are computed.
type Mode string

const (
	// ModeHash fingerprints files by SHA-256 content digest.
	ModeHash Mode = "hash"
	// ModeMTime fingerprints files by last-modified time. Cheaper, lower
	// fidelity: a rewrite within the same timestamp tick is invisible.
	ModeMTime Mode = "mtime"
)

// ParseMode maps a config/flag value to a Mode, defaulting to ModeHash.
func ParseMode(value string) Mode {
	if Mode(value) == ModeMTime {
		return ModeMTime
	}

	return ModeHash
}

// Snapshot maps absolute file paths to their fingerprint value. Entries
// whose fingerprint could not be resolved are omitted. A snapshot is built
// fresh on each poll and never mutated afterwards.
type Snapshot map[m.Path]string

// Filter narrows the files a snapshot covers. A nil Filter matches
// everything.
type Filter func(name string) bool

// Store computes fingerprint snapshots for directory trees.
type Store struct {
	fs   adapter.SuiteFSAdapter
	mode Mode
}

// NewStore constructs a Store over the given filesystem adapter.
func NewStore(fsAdapter adapter.SuiteFSAdapter, mode Mode) *Store {
	return &Store{fs: fsAdapter, mode: mode}
}

// Snapshot walks root and fingerprints every regular file whose base name
// passes the filter. A file that vanishes between listing and
// fingerprinting, or that turns out not to be a regular file, is simply
// omitted; any other error is fatal and propagates.
func (s *Store) Snapshot(root m.Path, filter Filter) (Snapshot, error) {
	snap := make(Snapshot)

	err := s.fs.Walk(root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if tolerable(err) {
				return nil
			}

			return err
		}

		if info.IsDir() {
			return nil
		}

		if filter != nil && !filter(info.Name()) {
			return nil
		}

		print, err := s.fingerprint(m.Path(path))
		if err != nil {
			if tolerable(err) {
				slog.Debug("skipping unreadable file", "path", path, "error", err)
				return nil
			}

			return fmt.Errorf("fingerprint %s: %w", path, err)
		}

		snap[m.Path(path)] = print

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

func (s *Store) fingerprint(path m.Path) (string, error) {
	if s.mode == ModeMTime {
		t, err := s.fs.ModTime(path)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%d", t.UnixNano()), nil
	}

	return s.fs.HashFile(path)
}

// tolerable reports whether err is one of the known filesystem faults that
// mean "this file is no longer worth fingerprinting" rather than "the poll
// is broken". Classification is structural, never by message text.
func tolerable(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || adapter.IsNotRegularFile(err)
}
