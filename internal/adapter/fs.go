// Package adapter contains infrastructure adapters for the revisit engine.
package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	m "revisit.dev/pkg/revisit/internal/model"
)

// NotRegularFileError reports that a path resolved to something other than
// a regular file (directory, symlink target, device). Callers that tolerate
// vanished files usually tolerate this class as well; matching is done with
// errors.As, never on the message text.
type NotRegularFileError struct {
	Path m.Path
	Mode os.FileMode
}

// Error implements the error interface.
func (e *NotRegularFileError) Error() string {
	return fmt.Sprintf("%s is not a regular file (mode %s)", e.Path, e.Mode)
}

// IsNotRegularFile reports whether err wraps a NotRegularFileError.
func IsNotRegularFile(err error) bool {
	var nre *NotRegularFileError
	return errors.As(err, &nre)
}

// SuiteFSAdapter abstracts the filesystem operations the loader and the
// fingerprint store rely on. It hides direct `os` access so both can be
// tested without touching the disk.
type SuiteFSAdapter interface {
	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ListDir returns the entry names of a directory, in directory order.
	ListDir(dir m.Path) ([]string, error)

	// FileInfo returns metadata for a path so callers can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(path m.Path) (os.FileInfo, error)

	// HashFile returns a stable content fingerprint (SHA-256) for the regular
	// file at path.
	HashFile(path m.Path) (string, error)

	// ModTime returns the last-modified time of the regular file at path.
	ModTime(path m.Path) (time.Time, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// engine packages.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSuiteFSAdapter is the concrete SuiteFSAdapter backed by the os package.
type LocalSuiteFSAdapter struct{}

// NewLocalSuiteFSAdapter constructs a LocalSuiteFSAdapter ready to be wired
// into the loader and the fingerprint store.
func NewLocalSuiteFSAdapter() *LocalSuiteFSAdapter {
	return &LocalSuiteFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSuiteFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ListDir returns the entry names of dir.
func (a *LocalSuiteFSAdapter) ListDir(dir m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSuiteFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSuiteFSAdapter) HashFile(path m.Path) (string, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		return "", err
	}

	if !info.Mode().IsRegular() {
		return "", &NotRegularFileError{Path: path, Mode: info.Mode()}
	}

	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// ModTime returns the last-modified timestamp of the file at path.
func (a *LocalSuiteFSAdapter) ModTime(path m.Path) (time.Time, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		return time.Time{}, err
	}

	if !info.Mode().IsRegular() {
		return time.Time{}, &NotRegularFileError{Path: path, Mode: info.Mode()}
	}

	return info.ModTime(), nil
}
