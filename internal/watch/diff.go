package watch

import (
	"sort"

	m "revisit.dev/pkg/revisit/internal/model"
)

// ChangeSet summarizes the difference between two fingerprint snapshots.
// The three path slices are sorted and duplicate-free; Count is always
// their combined length.
type ChangeSet struct {
	Count    int
	Added    []m.Path
	Deleted  []m.Path
	Modified []m.Path
}

// Any reports whether the change set is non-empty.
func (c ChangeSet) Any() bool {
	return c.Count > 0
}

// Diff compares two snapshots. It is a pure function: no I/O, no side
// effects. Swapping old and new swaps Added and Deleted and leaves the
// Modified path set identical.
func Diff(old, curr Snapshot) ChangeSet {
	var cs ChangeSet

	for path, print := range curr {
		oldPrint, ok := old[path]
		switch {
		case !ok:
			cs.Added = append(cs.Added, path)
		case oldPrint != print:
			cs.Modified = append(cs.Modified, path)
		}
	}

	for path := range old {
		if _, ok := curr[path]; !ok {
			cs.Deleted = append(cs.Deleted, path)
		}
	}

	sortPaths(cs.Added)
	sortPaths(cs.Deleted)
	sortPaths(cs.Modified)

	cs.Count = len(cs.Added) + len(cs.Deleted) + len(cs.Modified)

	return cs
}

func sortPaths(paths []m.Path) {
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
}
