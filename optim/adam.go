// Package optim provides the optimizer applied to the trainable persona
// table: Adam with lazy row updates. Skip-gram batches touch only a small
// subset of table rows, so moment state advances only for rows that actually
// received gradient — the sparse-embedding variant of Adam. The frozen base
// table never passes through here.
package optim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for optimizer construction and stepping.
var (
	// ErrBadLearningRate indicates a learning rate <= 0.
	ErrBadLearningRate = errors.New("optim: learning rate must be positive")

	// ErrBadBeta indicates a moment decay outside [0, 1).
	ErrBadBeta = errors.New("optim: betas must lie in [0, 1)")

	// ErrBadShape indicates a table or gradient shape that disagrees with
	// the optimizer state.
	ErrBadShape = errors.New("optim: shape disagrees with optimizer state")
)

// Option configures an Adam instance.
type Option func(*Adam)

// WithLearningRate overrides the default learning rate (0.001).
func WithLearningRate(lr float64) Option {
	return func(a *Adam) { a.lr = lr }
}

// WithBetas overrides the moment decay rates (defaults 0.9, 0.999).
func WithBetas(beta1, beta2 float64) Option {
	return func(a *Adam) { a.beta1, a.beta2 = beta1, beta2 }
}

// Adam holds first/second moment estimates per table entry and a shared step
// counter used for bias correction.
type Adam struct {
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	step   int
	rows   int
	cols   int
	first  *mat.Dense // first-moment estimates (m)
	second *mat.Dense // second-moment estimates (v)
}

// NewAdam creates optimizer state for a rows×cols table.
//
// Errors:
//   - ErrBadShape        if rows or cols < 1.
//   - ErrBadLearningRate / ErrBadBeta for invalid hyperparameters.
//
// Complexity: O(rows·cols).
func NewAdam(rows, cols int, opts ...Option) (*Adam, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}

	a := &Adam{
		lr:    0.001,
		beta1: 0.9,
		beta2: 0.999,
		eps:   1e-8,
		rows:  rows,
		cols:  cols,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.lr <= 0 {
		return nil, ErrBadLearningRate
	}
	if a.beta1 < 0 || a.beta1 >= 1 || a.beta2 < 0 || a.beta2 >= 1 {
		return nil, ErrBadBeta
	}

	a.first = mat.NewDense(rows, cols, nil)
	a.second = mat.NewDense(rows, cols, nil)

	return a, nil
}

// StepCount returns the number of optimizer steps applied so far.
func (a *Adam) StepCount() int { return a.step }

// Step applies one Adam update to table using the accumulated per-row
// gradients. Rows absent from grads keep both their weights and their moment
// state (lazy update). Row updates are independent, so application order
// does not affect the result.
//
// Errors:
//   - ErrBadShape if the table or any gradient row disagrees with the state.
//
// Complexity: O(|grads|·cols).
func (a *Adam) Step(table *mat.Dense, grads map[int][]float64) error {
	r, c := table.Dims()
	if r != a.rows || c != a.cols {
		return fmt.Errorf("%w: table %dx%d, state %dx%d", ErrBadShape, r, c, a.rows, a.cols)
	}

	a.step++
	correction1 := 1 - math.Pow(a.beta1, float64(a.step))
	correction2 := 1 - math.Pow(a.beta2, float64(a.step))

	for row, grad := range grads {
		if row < 0 || row >= a.rows {
			return fmt.Errorf("%w: gradient row %d of %d", ErrBadShape, row, a.rows)
		}
		if len(grad) != a.cols {
			return fmt.Errorf("%w: gradient row %d has %d cols, want %d", ErrBadShape, row, len(grad), a.cols)
		}

		weight := table.RawRowView(row)
		m := a.first.RawRowView(row)
		v := a.second.RawRowView(row)

		// m = β1·m + (1-β1)·g
		floats.Scale(a.beta1, m)
		floats.AddScaled(m, 1-a.beta1, grad)

		for k := range grad {
			// v = β2·v + (1-β2)·g²
			v[k] = a.beta2*v[k] + (1-a.beta2)*grad[k]*grad[k]

			mHat := m[k] / correction1
			vHat := v[k] / correction2
			weight[k] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}

	return nil
}
