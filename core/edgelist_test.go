package core_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitter/core"
)

func TestEdgeList_RoundTrip(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddEdge("1", "2"))
	require.NoError(t, g.AddEdge("2", "3"))
	require.NoError(t, g.AddEdge("1", "3"))

	var buf bytes.Buffer
	require.NoError(t, g.WriteEdgeList(&buf))
	assert.Equal(t, "1 2\n1 3\n2 3\n", buf.String())

	back, err := core.ReadEdgeList(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.Edges(), back.Edges())
}

func TestReadEdgeList_SkipsCommentsAndBlanks(t *testing.T) {
	in := "# karate club, trimmed\n\n1 2\n  \n2 3\n"
	g, err := core.ReadEdgeList(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestReadEdgeList_Malformed(t *testing.T) {
	_, err := core.ReadEdgeList(strings.NewReader("1 2\n1 2 3\n"))
	require.ErrorIs(t, err, core.ErrBadEdgeList)
	assert.Contains(t, err.Error(), "line 2")
}
