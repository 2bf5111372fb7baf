package gen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitter/gen"
)

func TestComplete(t *testing.T) {
	g, err := gen.Build(nil, nil, gen.Complete(4))
	require.NoError(t, err)

	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 6, g.EdgeCount())
	for _, id := range g.Vertices() {
		deg, derr := g.Degree(id)
		require.NoError(t, derr)
		assert.Equal(t, 3, deg)
	}
}

func TestCycle(t *testing.T) {
	g, err := gen.Build(nil, nil, gen.Cycle(5))
	require.NoError(t, err)

	assert.Equal(t, 5, g.VertexCount())
	assert.Equal(t, 5, g.EdgeCount())
	assert.True(t, g.HasEdge("v4", "v0"))
	for _, id := range g.Vertices() {
		deg, derr := g.Degree(id)
		require.NoError(t, derr)
		assert.Equal(t, 2, deg)
	}
}

func TestPath(t *testing.T) {
	g, err := gen.Build(nil, nil, gen.Path(4))
	require.NoError(t, err)

	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 3, g.EdgeCount())
	endDeg, err := g.Degree("v0")
	require.NoError(t, err)
	assert.Equal(t, 1, endDeg)
}

func TestStar(t *testing.T) {
	g, err := gen.Build(nil, nil, gen.Star(5))
	require.NoError(t, err)

	assert.Equal(t, 5, g.VertexCount())
	assert.Equal(t, 4, g.EdgeCount())
	hubDeg, err := g.Degree("v0")
	require.NoError(t, err)
	assert.Equal(t, 4, hubDeg)
}

func TestIDPrefix(t *testing.T) {
	g, err := gen.Build(nil, []gen.Option{gen.WithIDPrefix("p")}, gen.Path(2))
	require.NoError(t, err)
	assert.True(t, g.HasVertex("p0"))
	assert.True(t, g.HasVertex("p1"))
}

func TestComposition(t *testing.T) {
	// A cycle with a chord set laid over it via Complete on the same IDs.
	g, err := gen.Build(nil, nil, gen.Cycle(4), gen.Complete(4))
	require.NoError(t, err)
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 6, g.EdgeCount()) // cycle edges are a subset, AddEdge is idempotent
}

func TestValidation(t *testing.T) {
	_, err := gen.Build(nil, nil, gen.Complete(0))
	require.ErrorIs(t, err, gen.ErrTooFewVertices)

	_, err = gen.Build(nil, nil, gen.Cycle(2))
	require.ErrorIs(t, err, gen.ErrTooFewVertices)

	_, err = gen.Build(nil, nil, nil)
	require.ErrorIs(t, err, gen.ErrNilConstructor)
}
