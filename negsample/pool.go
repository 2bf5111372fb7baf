// SPDX-License-Identifier: MIT
//
// File: pool.go
// Role: Pool construction from persona-graph degrees and uniform sampling.

package negsample

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/katalvlaran/splitter/core"
)

// Pool is a flat multiset of embedding-table rows. Row r of the table appears
// Weight(degree(r)) times, so a uniform draw over the pool realizes the
// smoothed-degree negative-sampling distribution.
//
// Sample is safe for concurrent use; under concurrency the interleaving of
// draws (and therefore the exact values) is non-deterministic even with a
// fixed seed.
type Pool struct {
	items []int

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Weight returns the pool multiplicity for a vertex of the given degree:
// 1 + floor(degree^0.75). Monotonically non-decreasing in degree.
// Complexity: O(1).
func Weight(degree int) int {
	return 1 + int(math.Floor(math.Pow(float64(degree), SmoothingExponent)))
}

// Build constructs the pool over all vertices of g, translated to table rows
// via ix. An empty graph yields an empty pool (Sample then fails with
// ErrEmptyPool). Rows enter the pool in index order, so pool layout is
// deterministic; only draws depend on the random source.
// Complexity: O(V + sum of weights).
func Build(g *core.Graph, ix *core.Index, opts ...Option) (*Pool, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ids := ix.IDs()
	items := make([]int, 0, len(ids))
	for row, id := range ids {
		deg, err := g.Degree(id)
		if err != nil {
			return nil, fmt.Errorf("negsample: degree of %q: %w", id, err)
		}
		for i, w := 0, Weight(deg); i < w; i++ {
			items = append(items, row)
		}
	}

	return &Pool{items: items, rng: o.rng}, nil
}

// Size returns the total multiset size (sum of weights).
// Complexity: O(1).
func (p *Pool) Size() int { return len(p.items) }

// Sample draws k rows uniformly at random with replacement.
//
// Errors:
//   - ErrBadSampleSize if k < 0.
//   - ErrEmptyPool if the pool is empty and k > 0.
//
// Complexity: O(k).
func (p *Pool) Sample(k int) ([]int, error) {
	if k < 0 {
		return nil, ErrBadSampleSize
	}
	if k == 0 {
		return nil, nil
	}
	if len(p.items) == 0 {
		return nil, ErrEmptyPool
	}

	out := make([]int, k)
	p.mu.Lock()
	for i := range out {
		out[i] = p.items[p.rng.Intn(len(p.items))]
	}
	p.mu.Unlock()

	return out, nil
}
