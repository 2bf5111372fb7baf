package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitter/core"
)

// TestIndex_RowAssignment verifies rows follow sorted vertex order, so the
// id↔row bijection is stable across runs for a fixed vertex set.
func TestIndex_RowAssignment(t *testing.T) {
	g := core.NewGraph()
	for _, id := range []string{"beta", "alpha", "gamma"} {
		require.NoError(t, g.AddVertex(id))
	}

	ix := core.NewIndex(g)
	require.Equal(t, 3, ix.Len())

	for i, id := range []string{"alpha", "beta", "gamma"} {
		row, err := ix.Row(id)
		require.NoError(t, err)
		assert.Equal(t, i, row)
		assert.Equal(t, id, ix.ID(i))
	}
}

func TestIndex_UnknownID(t *testing.T) {
	ix := core.NewIndex(core.NewGraph())

	_, err := ix.Row("missing")
	require.ErrorIs(t, err, core.ErrUnknownID)

	assert.Equal(t, "", ix.ID(0))
	assert.Equal(t, "", ix.ID(-1))
}

func TestIndex_RowsOf(t *testing.T) {
	g := core.NewGraph()
	_ = g.AddEdge("a", "b")
	_ = g.AddEdge("b", "c")
	ix := core.NewIndex(g)

	rows, err := ix.RowsOf(core.Walk{"a", "b", "c", "b"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 1}, rows)

	_, err = ix.RowsOf(core.Walk{"a", "nope"})
	require.ErrorIs(t, err, core.ErrUnknownID)
}
