// Package model implements the splitter loss: a negative-sampling skip-gram
// objective over persona embeddings (the centrifugal term) plus a
// regularization term pulling each persona back toward its original node's
// base embedding (the centripetal term).
//
// Both terms share the same shape: L2-normalize the two vector groups
// row-wise, take the per-row dot product (cosine similarity), squash through
// a logistic sigmoid, and score against the target. The main term is binary
// cross-entropy over positive and negative pairs; the regularization term is
// the single-sided -log p, always pushing toward alignment. Probabilities
// are clamped away from 0 and 1 before the log so saturated rows cannot
// produce a non-finite loss.
//
// The package is pure vector math: it consumes gathered embedding matrices,
// never table indices, and produces the loss value and per-row gradients
// with respect to the trainable inputs. Scattering gradients back onto table
// rows is the trainer's job.
package model

import (
	"errors"
	"math"

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/mat"
)

const (
	// probEpsilon clamps sigmoid outputs into [probEpsilon, 1-probEpsilon]
	// before the log, keeping the loss finite under saturation.
	probEpsilon = 1e-7

	// normEpsilon is the threshold below which a row is treated as the zero
	// vector: its normalized form is all zeros, cosine 0, probability 0.5.
	normEpsilon = 1e-12
)

// Sentinel errors for model construction and input validation.
var (
	// ErrBadLambda indicates a negative regularization weight.
	ErrBadLambda = errors.New("model: lambda must be non-negative")

	// ErrShapeMismatch indicates misaligned input groups (row counts or
	// dimensions disagree).
	ErrShapeMismatch = errors.New("model: input shapes disagree")
)

// Model carries the fixed hyperparameters of the loss.
type Model struct {
	lambda float64
}

// New returns a Model with regularization weight lambda.
// Returns ErrBadLambda if lambda < 0.
func New(lambda float64) (*Model, error) {
	if lambda < 0 {
		return nil, ErrBadLambda
	}

	return &Model{lambda: lambda}, nil
}

// Lambda returns the regularization weight.
func (m *Model) Lambda() float64 { return m.lambda }

// Loss computes the combined scalar loss
//
//	mean BCE(σ(cos(node, feature)), targets) + λ · mean -log σ(cos(source, original))
//
// nodeVecs/featureVecs/targets form the main group (one row per replicated
// example); sourceVecs/originalVecs form the regularization group (one row
// per positive pair). Either group may be empty (nil or zero rows) and then
// contributes zero — the walker's plain skip-gram fit runs with an empty
// regularization group.
//
// Complexity: O((N + P)·dim).
func (m *Model) Loss(
	nodeVecs, featureVecs *mat.Dense,
	targets []float64,
	sourceVecs, originalVecs *mat.Dense,
) (float64, error) {
	main, reg, err := m.forward(nodeVecs, featureVecs, targets, sourceVecs, originalVecs, nil, nil, nil)
	if err != nil {
		return 0, err
	}

	return main + m.lambda*reg, nil
}

// LossAndGradients computes the combined loss together with per-row
// gradients with respect to the three trainable inputs. Gradient rows align
// one-for-one with the corresponding input rows:
//
//	gradNode    — ∂loss/∂nodeVecs    (main term, source side)
//	gradFeature — ∂loss/∂featureVecs (main term, context side)
//	gradSource  — ∂loss/∂sourceVecs  (regularization term, λ included)
//
// originalVecs is the frozen anchor group; no gradient is produced for it.
//
// Complexity: O((N + P)·dim).
func (m *Model) LossAndGradients(
	nodeVecs, featureVecs *mat.Dense,
	targets []float64,
	sourceVecs, originalVecs *mat.Dense,
) (loss float64, gradNode, gradFeature, gradSource *mat.Dense, err error) {
	if n := rows(nodeVecs); n > 0 {
		gradNode = mat.NewDense(n, cols(nodeVecs), nil)
		gradFeature = mat.NewDense(n, cols(nodeVecs), nil)
	}
	if p := rows(sourceVecs); p > 0 {
		gradSource = mat.NewDense(p, cols(sourceVecs), nil)
	}

	main, reg, err := m.forward(nodeVecs, featureVecs, targets, sourceVecs, originalVecs, gradNode, gradFeature, gradSource)
	if err != nil {
		return 0, nil, nil, nil, err
	}

	return main + m.lambda*reg, gradNode, gradFeature, gradSource, nil
}

// forward runs both terms, optionally accumulating gradients when the
// gradient matrices are non-nil.
func (m *Model) forward(
	nodeVecs, featureVecs *mat.Dense,
	targets []float64,
	sourceVecs, originalVecs *mat.Dense,
	gradNode, gradFeature, gradSource *mat.Dense,
) (mainLoss, regLoss float64, err error) {
	n := rows(nodeVecs)
	if rows(featureVecs) != n || len(targets) != n {
		return 0, 0, ErrShapeMismatch
	}
	p := rows(sourceVecs)
	if rows(originalVecs) != p {
		return 0, 0, ErrShapeMismatch
	}
	if n > 0 && p > 0 && cols(nodeVecs) != cols(sourceVecs) {
		return 0, 0, ErrShapeMismatch
	}
	if (n > 0 && cols(nodeVecs) != cols(featureVecs)) || (p > 0 && cols(sourceVecs) != cols(originalVecs)) {
		return 0, 0, ErrShapeMismatch
	}

	// Main term: BCE over σ(cosine) with dLoss/dScore = p - t.
	for i := 0; i < n; i++ {
		x := nodeVecs.RawRowView(i)
		y := featureVecs.RawRowView(i)

		u, xNorm := normalized(x)
		v, yNorm := normalized(y)
		score := vek.Dot(u, v)
		prob := sigmoid(score)

		t := targets[i]
		mainLoss += bce(prob, t)

		if gradNode != nil {
			coef := (prob - t) / float64(n)
			addScaledNormGrad(gradNode.RawRowView(i), coef, v, u, score, xNorm)
			addScaledNormGrad(gradFeature.RawRowView(i), coef, u, v, score, yNorm)
		}
	}
	if n > 0 {
		mainLoss /= float64(n)
	}

	// Regularization term: -log σ(cosine) against the frozen base anchor,
	// with dLoss/dScore = p - 1.
	for i := 0; i < p; i++ {
		x := sourceVecs.RawRowView(i)
		b := originalVecs.RawRowView(i)

		u, xNorm := normalized(x)
		a, _ := normalized(b)
		score := vek.Dot(u, a)
		prob := sigmoid(score)

		regLoss += -math.Log(clamp(prob))

		if gradSource != nil {
			coef := m.lambda * (prob - 1) / float64(p)
			addScaledNormGrad(gradSource.RawRowView(i), coef, a, u, score, xNorm)
		}
	}
	if p > 0 {
		regLoss /= float64(p)
	}

	return mainLoss, regLoss, nil
}

// addScaledNormGrad accumulates coef · (other - score·self) / norm into dst:
// the gradient of the cosine score through the L2 normalization of one side.
// A zero-norm row has no direction to move in and receives no gradient.
func addScaledNormGrad(dst []float64, coef float64, other, self []float64, score, norm float64) {
	if norm < normEpsilon {
		return
	}
	scale := coef / norm
	for k := range dst {
		dst[k] += scale * (other[k] - score*self[k])
	}
}

// normalized returns the unit-length copy of x and its Euclidean norm.
// Rows with norm below normEpsilon come back as zero vectors.
func normalized(x []float64) ([]float64, float64) {
	norm := math.Sqrt(vek.Dot(x, x))
	out := make([]float64, len(x))
	if norm < normEpsilon {
		return out, norm
	}
	for k := range x {
		out[k] = x[k] / norm
	}

	return out, norm
}

// sigmoid is the logistic function.
func sigmoid(s float64) float64 {
	return 1 / (1 + math.Exp(-s))
}

// bce is the clamped binary cross-entropy of one example.
func bce(prob, target float64) float64 {
	return -(target*math.Log(clamp(prob)) + (1-target)*math.Log(clamp(1-prob)))
}

// clamp keeps probabilities inside [probEpsilon, 1-probEpsilon].
func clamp(p float64) float64 {
	if p < probEpsilon {
		return probEpsilon
	}
	if p > 1-probEpsilon {
		return 1 - probEpsilon
	}

	return p
}

func rows(m *mat.Dense) int {
	if m == nil {
		return 0
	}
	r, _ := m.Dims()

	return r
}

func cols(m *mat.Dense) int {
	if m == nil {
		return 0
	}
	_, c := m.Dims()

	return c
}
