package ego_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitter/core"
	"github.com/katalvlaran/splitter/ego"
)

func TestIdentity_Split(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))

	personas, mapping, err := ego.Identity{}.Split(g)
	require.NoError(t, err)

	assert.Equal(t, g.Edges(), personas.Edges())
	assert.Equal(t, map[string]string{"a": "a", "b": "b", "c": "c"}, mapping)

	// The persona graph is an independent copy.
	require.NoError(t, personas.AddEdge("c", "d"))
	assert.False(t, g.HasVertex("d"))
}

func TestIdentity_NilGraph(t *testing.T) {
	_, _, err := ego.Identity{}.Split(nil)
	require.ErrorIs(t, err, ego.ErrNilGraph)
}
