package optim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/splitter/optim"
)

func TestNewAdam_Validation(t *testing.T) {
	_, err := optim.NewAdam(0, 4)
	require.ErrorIs(t, err, optim.ErrBadShape)

	_, err = optim.NewAdam(2, 2, optim.WithLearningRate(0))
	require.ErrorIs(t, err, optim.ErrBadLearningRate)

	_, err = optim.NewAdam(2, 2, optim.WithBetas(1.0, 0.999))
	require.ErrorIs(t, err, optim.ErrBadBeta)
}

// TestStep_FirstUpdateMagnitude: with zero moments the bias-corrected first
// step moves every touched entry by ≈ lr·sign(gradient).
func TestStep_FirstUpdateMagnitude(t *testing.T) {
	const lr = 0.01
	a, err := optim.NewAdam(2, 3, optim.WithLearningRate(lr))
	require.NoError(t, err)

	table := mat.NewDense(2, 3, []float64{
		1, 1, 1,
		2, 2, 2,
	})

	grads := map[int][]float64{0: {0.5, -0.25, 0}}
	require.NoError(t, a.Step(table, grads))
	assert.Equal(t, 1, a.StepCount())

	// Entry with positive gradient decreases by ~lr, negative increases.
	assert.InDelta(t, 1-lr, table.At(0, 0), 1e-6)
	assert.InDelta(t, 1+lr, table.At(0, 1), 1e-6)
	// Zero gradient leaves the entry in place.
	assert.Equal(t, 1.0, table.At(0, 2))
}

// TestStep_LazyRows: rows without gradient keep weights and moments frozen.
func TestStep_LazyRows(t *testing.T) {
	a, err := optim.NewAdam(3, 2, optim.WithLearningRate(0.1))
	require.NoError(t, err)

	table := mat.NewDense(3, 2, []float64{1, 1, 2, 2, 3, 3})

	require.NoError(t, a.Step(table, map[int][]float64{1: {1, 1}}))

	assert.Equal(t, []float64{1, 1}, table.RawRowView(0))
	assert.Equal(t, []float64{3, 3}, table.RawRowView(2))
	assert.NotEqual(t, []float64{2, 2}, table.RawRowView(1))
}

// TestStep_ConvergesOnQuadratic drives a single row toward zero on
// f(w) = ||w||², whose gradient is 2w.
func TestStep_ConvergesOnQuadratic(t *testing.T) {
	a, err := optim.NewAdam(1, 2, optim.WithLearningRate(0.05))
	require.NoError(t, err)

	table := mat.NewDense(1, 2, []float64{1.5, -2.0})
	for i := 0; i < 500; i++ {
		w := table.RawRowView(0)
		grads := map[int][]float64{0: {2 * w[0], 2 * w[1]}}
		require.NoError(t, a.Step(table, grads))
	}

	w := table.RawRowView(0)
	assert.Less(t, math.Abs(w[0]), 0.2)
	assert.Less(t, math.Abs(w[1]), 0.2)
}

func TestStep_ShapeChecks(t *testing.T) {
	a, err := optim.NewAdam(2, 2)
	require.NoError(t, err)

	wrong := mat.NewDense(3, 2, nil)
	require.ErrorIs(t, a.Step(wrong, nil), optim.ErrBadShape)

	table := mat.NewDense(2, 2, nil)
	require.ErrorIs(t, a.Step(table, map[int][]float64{5: {1, 1}}), optim.ErrBadShape)
	require.ErrorIs(t, a.Step(table, map[int][]float64{0: {1}}), optim.ErrBadShape)
}
