package dag

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/cellgridgo/internal/cellref"
	"github.com/specialistvlad/cellgridgo/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableOf(t *testing.T, cells map[string]string) *table.Table {
	t.Helper()
	tbl := table.New()
	for r, text := range cells {
		tbl.Set(ref(t, r), text)
	}
	return tbl
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tbl := tableOf(t, map[string]string{
		"a1": "3",
		"b1": "a1 + 2",
		"c1": "a1 * b1 - a1",
		"a2": "",
	})

	g := Build(context.Background(), tbl)
	require.Equal(t, 4, g.Len())
	assert.Empty(t, g.Problems())

	deps, err := g.Dependencies(ref(t, "c1"))
	require.NoError(t, err)
	want := []cellref.Coordinate{ref(t, "a1"), ref(t, "b1")}
	if diff := cmp.Diff(want, deps); diff != "" {
		t.Errorf("Dependencies(c1) mismatch (-want +got):\n%s", diff)
	}

	deps, err = g.Dependencies(ref(t, "a2"))
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestBuild_DanglingReference(t *testing.T) {
	t.Parallel()

	tbl := tableOf(t, map[string]string{
		"a1": "1",
		"b1": "a1 + z9",
		"c1": "a1",
	})

	g := Build(context.Background(), tbl)

	err := g.Problem(ref(t, "b1"))
	assert.ErrorIs(t, err, ErrDanglingReference)
	assert.ErrorContains(t, err, "z9")
	assert.False(t, g.Has(ref(t, "z9")), "dangling target must not become a node")

	// The valid reference of b1 is still linked.
	deps, err := g.Dependencies(ref(t, "b1"))
	require.NoError(t, err)
	assert.Equal(t, []cellref.Coordinate{ref(t, "a1")}, deps)

	// Unrelated cells are untouched.
	assert.NoError(t, g.Problem(ref(t, "c1")))
	assert.Len(t, g.Problems(), 1)
}

func TestBuild_InvalidReference(t *testing.T) {
	t.Parallel()

	tbl := tableOf(t, map[string]string{
		"a1": "b0 + 1",
		"b1": "2",
	})

	g := Build(context.Background(), tbl)
	assert.ErrorIs(t, g.Problem(ref(t, "a1")), cellref.ErrInvalidReference)
	assert.NoError(t, g.Problem(ref(t, "b1")))
}

func TestBuild_CycleScoping(t *testing.T) {
	t.Parallel()

	tbl := tableOf(t, map[string]string{
		"a1": "b1",
		"b1": "a1",
		"c1": "5",
	})

	g := Build(context.Background(), tbl)
	d := NewCycleDetector(g)
	assert.True(t, d.HasCycle(ref(t, "a1")))
	assert.True(t, d.HasCycle(ref(t, "b1")))
	assert.False(t, d.HasCycle(ref(t, "c1")))
}
