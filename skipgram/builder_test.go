// Package skipgram_test validates the windowing rule, the replicate-block
// layout and the ownership bookkeeping of the batch builder.
package skipgram_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/splitter/core"
	"github.com/katalvlaran/splitter/negsample"
	"github.com/katalvlaran/splitter/skipgram"
)

// path builds a path graph over n string vertices "0".."n-1" and returns the
// graph with its index and a seeded pool, the fixture every test here needs.
func path(t *testing.T, n int) (*core.Graph, *core.Index, *negsample.Pool) {
	t.Helper()
	g := core.NewGraph()
	for i := 0; i+1 < n; i++ {
		require.NoError(t, g.AddEdge(fmt.Sprint(i), fmt.Sprint(i+1)))
	}
	ix := core.NewIndex(g)
	pool, err := negsample.Build(g, ix, negsample.WithSeed(99))
	require.NoError(t, err)

	return g, ix, pool
}

// identity returns ownerRows mapping persona row i to base row i.
func identity(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}

	return rows
}

func seqWalk(l int) []int {
	w := make([]int, l)
	for i := range w {
		w[i] = i % 4
	}

	return w
}

func TestNewBuilder_Validation(t *testing.T) {
	_, _, pool := path(t, 4)

	_, err := skipgram.NewBuilder(0, 5, identity(4), pool)
	require.ErrorIs(t, err, skipgram.ErrBadWindow)

	_, err = skipgram.NewBuilder(2, -1, identity(4), pool)
	require.ErrorIs(t, err, skipgram.ErrBadNegative)

	_, err = skipgram.NewBuilder(2, 5, identity(4), nil)
	require.ErrorIs(t, err, skipgram.ErrNilPool)
}

// TestAppendWalk_PairCountFormula checks P == 2w(L-2w) for L > 2w and
// P == 0 otherwise: boundary windows are dropped entirely, never clipped.
func TestAppendWalk_PairCountFormula(t *testing.T) {
	_, _, pool := path(t, 4)

	cases := []struct {
		length, window int
	}{
		{3, 1}, {4, 1}, {10, 1}, {5, 2}, {10, 2}, {10, 4},
		{2, 1}, {4, 2}, {6, 3}, {1, 1}, // degenerate: L <= 2w
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("L=%d_w=%d", c.length, c.window), func(t *testing.T) {
			bld, err := skipgram.NewBuilder(c.window, 3, identity(4), pool)
			require.NoError(t, err)

			b := skipgram.NewBatch()
			require.NoError(t, bld.AppendWalk(b, seqWalk(c.length)))

			want := 0
			if c.length > 2*c.window {
				want = 2 * c.window * (c.length - 2*c.window)
			}
			assert.Equal(t, want, b.Positives(), "positive pair count")
			assert.Equal(t, want*(3+1), b.Len(), "replicated length")
		})
	}
}

// TestAppendWalk_TargetsLayout checks the exact replicate-block shape:
// P ones followed by negativeK*P zeros, with all five sequences aligned.
func TestAppendWalk_TargetsLayout(t *testing.T) {
	_, _, pool := path(t, 4)
	const window, negK = 1, 2

	bld, err := skipgram.NewBuilder(window, negK, identity(4), pool)
	require.NoError(t, err)

	b := skipgram.NewBatch()
	require.NoError(t, bld.AppendWalk(b, []int{0, 1, 2, 3}))

	p := b.Positives()
	require.Equal(t, 4, p) // 2*1*(4-2)

	require.Len(t, b.Sources, p*(negK+1))
	require.Len(t, b.Contexts, p*(negK+1))
	require.Len(t, b.Targets, p*(negK+1))
	require.Len(t, b.PureSources, p)
	require.Len(t, b.Personas, p)

	for i := 0; i < p; i++ {
		assert.Equal(t, 1.0, b.Targets[i], "positive block at %d", i)
	}
	for i := p; i < len(b.Targets); i++ {
		assert.Equal(t, 0.0, b.Targets[i], "negative block at %d", i)
	}

	// Each replicate repeats the positive source block verbatim.
	for r := 1; r <= negK; r++ {
		assert.Equal(t, b.Sources[:p], b.Sources[r*p:(r+1)*p], "replicate %d", r)
	}
}

// TestAppendWalk_PairsExact pins the emitted pairs for walk rows [0,1,2,3]
// with window 1: full-window centers are positions 1 and 2, right contexts
// first, then left contexts.
func TestAppendWalk_PairsExact(t *testing.T) {
	_, _, pool := path(t, 4)

	bld, err := skipgram.NewBuilder(1, 0, identity(4), pool)
	require.NoError(t, err)

	b := skipgram.NewBatch()
	require.NoError(t, bld.AppendWalk(b, []int{0, 1, 2, 3}))

	assert.Equal(t, []int{1, 2, 1, 2}, b.Sources)
	assert.Equal(t, []int{2, 3, 0, 1}, b.Contexts)
	assert.Equal(t, []float64{1, 1, 1, 1}, b.Targets)
}

// TestAppendWalk_Ownership checks Personas carries the owner base row of each
// positive source, via a non-trivial persona→original mapping.
func TestAppendWalk_Ownership(t *testing.T) {
	_, _, pool := path(t, 4)

	// Personas 0,1 belong to original 0; personas 2,3 to original 1.
	owners := []int{0, 0, 1, 1}
	bld, err := skipgram.NewBuilder(1, 1, owners, pool)
	require.NoError(t, err)

	b := skipgram.NewBatch()
	require.NoError(t, bld.AppendWalk(b, []int{3, 2, 1, 0}))

	require.Equal(t, []int{2, 1, 2, 1}, b.PureSources)
	assert.Equal(t, []int{1, 0, 1, 0}, b.Personas)
}

// TestAppendWalk_Concatenation verifies per-walk replicate blocks stack in
// walk order, each with its own ones-then-zeros targets run.
func TestAppendWalk_Concatenation(t *testing.T) {
	_, _, pool := path(t, 4)
	const negK = 1

	bld, err := skipgram.NewBuilder(1, negK, identity(4), pool)
	require.NoError(t, err)

	b := skipgram.NewBatch()
	require.NoError(t, bld.AppendWalk(b, []int{0, 1, 2}))    // P=2
	require.NoError(t, bld.AppendWalk(b, []int{3, 2, 1, 0})) // P=4

	assert.Equal(t, 6, b.Positives())
	assert.Equal(t, 12, b.Len())

	want := []float64{1, 1, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0}
	assert.Equal(t, want, b.Targets)
}

func TestAppendWalk_RowOutOfRange(t *testing.T) {
	_, _, pool := path(t, 4)

	bld, err := skipgram.NewBuilder(1, 1, identity(2), pool)
	require.NoError(t, err)

	err = bld.AppendWalk(skipgram.NewBatch(), []int{0, 1, 2, 1})
	require.ErrorIs(t, err, skipgram.ErrRowOutOfRange)
}

// TestAppendWalk_EmptyPoolNeedsNegatives: a degenerate persona graph cannot
// supply negatives; requiring them must surface ErrEmptyPool.
func TestAppendWalk_EmptyPoolNeedsNegatives(t *testing.T) {
	empty := core.NewGraph()
	pool, err := negsample.Build(empty, core.NewIndex(empty))
	require.NoError(t, err)

	bld, err := skipgram.NewBuilder(1, 2, identity(4), pool)
	require.NoError(t, err)

	err = bld.AppendWalk(skipgram.NewBatch(), []int{0, 1, 2, 3})
	require.ErrorIs(t, err, negsample.ErrEmptyPool)
}

func TestBatch_Reset(t *testing.T) {
	_, _, pool := path(t, 4)
	bld, err := skipgram.NewBuilder(1, 1, identity(4), pool)
	require.NoError(t, err)

	b := skipgram.NewBatch()
	require.NoError(t, bld.AppendWalk(b, []int{0, 1, 2, 3}))
	require.NotZero(t, b.Len())

	b.Reset()
	assert.Zero(t, b.Len())
	assert.Zero(t, b.Positives())
	assert.Empty(t, b.Targets)
}
