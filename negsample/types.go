// Package negsample builds the weighted node pool that negative context
// examples are drawn from during skip-gram training.
//
// The pool is the standard word2vec-style smoothed unigram distribution
// carried over to graphs: node n enters the pool with multiplicity
//
//	weight(n) = 1 + floor(degree(n)^0.75)
//
// The 0.75 exponent down-weights high-degree hub nodes relative to raw
// degree while still favoring them over low-degree nodes; the +1 keeps
// isolated vertices sampleable. Sampling draws uniformly from the pool with
// replacement, independently per draw.
//
// Errors (sentinel):
//
//	ErrEmptyPool      - sampling attempted on an empty pool.
//	ErrBadSampleSize  - Sample called with k < 0.
package negsample

import (
	"errors"
	"math/rand"
	"time"
)

// SmoothingExponent is the degree-smoothing exponent of the pool weights,
// fixed at 3/4 per the word2vec negative-sampling heuristic.
const SmoothingExponent = 0.75

// Sentinel errors for pool construction and sampling.
var (
	// ErrEmptyPool indicates that sampling was attempted on an empty pool
	// (the underlying graph had no vertices).
	ErrEmptyPool = errors.New("negsample: pool is empty")

	// ErrBadSampleSize indicates a negative sample count.
	ErrBadSampleSize = errors.New("negsample: sample size must be non-negative")
)

// Option configures pool construction.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithSeed seeds the pool's internal random source, making every Sample
// sequence reproducible. Without it the pool is seeded from the clock.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies an external random source, typically shared with the
// walker so a single seed governs a whole training run.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

func defaultOptions() options {
	return options{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}
