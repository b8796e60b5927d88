package dag

import (
	"testing"

	"github.com/specialistvlad/cellgridgo/internal/cellref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ref is a test helper that decodes a reference or fails the test.
func ref(t *testing.T, s string) cellref.Coordinate {
	t.Helper()
	c, err := cellref.ToCoordinate(s)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Empty(t, g.Problems())
}

func TestAddNode(t *testing.T) {
	g := New()
	a1 := ref(t, "a1")

	g.AddNode(a1)
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes[a1]
	require.True(t, ok)
	assert.Equal(t, a1, nodeA.id)
	assert.NotNil(t, nodeA.refs)
	assert.NotNil(t, nodeA.referrers)

	g.AddNode(a1) // Test idempotency
	assert.Len(t, g.nodes, 1)

	g.AddNode(ref(t, "b1"))
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Has(ref(t, "b1")))
	assert.False(t, g.Has(ref(t, "c1")))
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		a1, b1 := ref(t, "a1"), ref(t, "b1")
		g.AddNode(a1)
		g.AddNode(b1)

		err := g.AddEdge(a1, b1) // a1 references b1
		require.NoError(t, err)

		nodeA := g.nodes[a1]
		nodeB := g.nodes[b1]

		assert.Contains(t, nodeA.refs, b1)
		assert.Equal(t, nodeB, nodeA.refs[b1])
		assert.Contains(t, nodeB.referrers, a1)
		assert.Equal(t, nodeA, nodeB.referrers[a1])
	})

	t.Run("self reference is allowed", func(t *testing.T) {
		g := New()
		a1 := ref(t, "a1")
		g.AddNode(a1)
		require.NoError(t, g.AddEdge(a1, a1))

		deps, err := g.Dependencies(a1)
		require.NoError(t, err)
		assert.Equal(t, []cellref.Coordinate{a1}, deps)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		a1 := ref(t, "a1")
		g.AddNode(a1)

		err := g.AddEdge(ref(t, "z9"), a1)
		assert.ErrorIs(t, err, ErrNodeNotFound)
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge(a1, ref(t, "z9"))
		assert.ErrorIs(t, err, ErrNodeNotFound)
		assert.ErrorContains(t, err, "destination node not found")
	})
}

func TestDependenciesAndDependents(t *testing.T) {
	g := New()
	a1, b1, c1, a2 := ref(t, "a1"), ref(t, "b1"), ref(t, "c1"), ref(t, "a2")
	for _, c := range []cellref.Coordinate{a1, b1, c1, a2} {
		g.AddNode(c)
	}
	require.NoError(t, g.AddEdge(c1, a2))
	require.NoError(t, g.AddEdge(c1, a1))
	require.NoError(t, g.AddEdge(c1, a1)) // duplicate edge collapses
	require.NoError(t, g.AddEdge(b1, a1))

	deps, err := g.Dependencies(c1)
	require.NoError(t, err)
	assert.Equal(t, []cellref.Coordinate{a1, a2}, deps)

	dependents, err := g.Dependents(a1)
	require.NoError(t, err)
	assert.Equal(t, []cellref.Coordinate{b1, c1}, dependents)

	_, err = g.Dependencies(ref(t, "z1"))
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, err = g.Dependents(ref(t, "z1"))
	assert.ErrorIs(t, err, ErrNodeNotFound)
}
