package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "revisit.dev/pkg/revisit/internal/model"
)

func TestDiff_SameSnapshotIsEmpty(t *testing.T) {
	snap := Snapshot{"/src/a.go": "h1", "/src/b.go": "h2"}

	cs := Diff(snap, snap)

	require.Equal(t, 0, cs.Count)
	assert.Empty(t, cs.Added)
	assert.Empty(t, cs.Deleted)
	assert.Empty(t, cs.Modified)
	assert.False(t, cs.Any())
}

func TestDiff_Modified(t *testing.T) {
	old := Snapshot{"/src/a.go": "h1"}
	curr := Snapshot{"/src/a.go": "h2"}

	cs := Diff(old, curr)

	require.Equal(t, 1, cs.Count)
	assert.Equal(t, []m.Path{"/src/a.go"}, cs.Modified)
}

func TestDiff_AddedThenDeleted(t *testing.T) {
	old := Snapshot{"/src/a.go": "h1"}
	withNew := Snapshot{"/src/a.go": "h1", "/src/g.go": "h9"}

	cs := Diff(old, withNew)
	require.Equal(t, 1, cs.Count)
	assert.Equal(t, []m.Path{"/src/g.go"}, cs.Added)

	cs = Diff(withNew, old)
	require.Equal(t, 1, cs.Count)
	assert.Equal(t, []m.Path{"/src/g.go"}, cs.Deleted)
}

func TestDiff_Symmetry(t *testing.T) {
	a := Snapshot{"/a": "1", "/b": "2", "/c": "3"}
	b := Snapshot{"/b": "2x", "/c": "3", "/d": "4"}

	forward := Diff(a, b)
	backward := Diff(b, a)

	assert.Equal(t, forward.Added, backward.Deleted)
	assert.Equal(t, forward.Deleted, backward.Added)
	assert.Equal(t, forward.Modified, backward.Modified)
	assert.Equal(t, forward.Count, backward.Count)
}

func TestDiff_CountCoversAllThreeSets(t *testing.T) {
	old := Snapshot{"/keep": "1", "/gone": "2", "/change": "3"}
	curr := Snapshot{"/keep": "1", "/change": "3x", "/new": "4"}

	cs := Diff(old, curr)

	require.Equal(t, 3, cs.Count)
	assert.Equal(t, []m.Path{"/new"}, cs.Added)
	assert.Equal(t, []m.Path{"/gone"}, cs.Deleted)
	assert.Equal(t, []m.Path{"/change"}, cs.Modified)
}
