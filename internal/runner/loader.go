package runner

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"revisit.dev/pkg/revisit/internal/adapter"
	m "revisit.dev/pkg/revisit/internal/model"
)

// suiteExt is the recognized source-file extension for suite files.
const suiteExt = ".go"

// Evaluator loads one suite file into the target scope. The shipped
// implementation is Registry.
type Evaluator interface {
	Eval(path m.Path, c *Controller) error
}

// NameFilter narrows which test files load. It receives the file's base
// name with the "test" prefix and the extension stripped; nil matches
// everything.
type NameFilter func(name string) bool

// Loader discovers and loads suite files: every helper file first, then the
// test files, both in lexicographic path order.
type Loader struct {
	fs   adapter.SuiteFSAdapter
	eval Evaluator
}

// NewLoader constructs a Loader over the given filesystem adapter and
// evaluator.
func NewLoader(fsAdapter adapter.SuiteFSAdapter, eval Evaluator) *Loader {
	return &Loader{fs: fsAdapter, eval: eval}
}

// Discover lists the helper and test files of dir, sorted, with the filter
// applied to test files only. Helpers always load as a full set.
func (l *Loader) Discover(dir m.Path, filter NameFilter) (helpers, tests []m.Path, err error) {
	names, err := l.fs.ListDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("list suite dir: %w", err)
	}

	for _, name := range names {
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, suiteExt) {
			continue
		}

		path := m.Path(filepath.Join(string(dir), name))

		switch {
		case strings.HasPrefix(lower, "helper"):
			helpers = append(helpers, path)
		case strings.HasPrefix(lower, "test"):
			stripped := strings.TrimSuffix(name[len("test"):], filepath.Ext(name))
			if filter == nil || filter(stripped) {
				tests = append(tests, path)
			}
		}
	}

	sortPaths(helpers)
	sortPaths(tests)

	return helpers, tests, nil
}

// Load evaluates every discovered suite file against scope: helpers first,
// then test files. It fails fast on a missing directory, an invalid
// controller/scope handle, or a file the evaluator cannot load, and treats
// zero matching test files as a fatal configuration error rather than a
// silent empty result.
func (l *Loader) Load(dir m.Path, filter NameFilter, c *Controller, scope *Scope) error {
	if c == nil || scope == nil {
		return ErrInvalidScope
	}

	info, err := l.fs.FileInfo(dir)
	if err != nil {
		return fmt.Errorf("suite dir %s: %w", dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("suite dir %s: not a directory", dir)
	}

	helpers, tests, err := l.Discover(dir, filter)
	if err != nil {
		return err
	}

	if len(tests) == 0 {
		return fmt.Errorf("%w in %s", ErrNoTestFiles, dir)
	}

	slog.Debug("loading suite", "dir", dir, "helpers", len(helpers), "tests", len(tests))

	for _, path := range append(helpers, tests...) {
		c.EnterFile(path, scope)

		if err := l.eval.Eval(path, c); err != nil {
			return err
		}
	}

	return nil
}

func sortPaths(paths []m.Path) {
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
}
