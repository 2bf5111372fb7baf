// SPDX-License-Identifier: MIT
//
// File: node2vec.go
// Role: Default Walker — second-order biased walks plus an SGNS fit.

package walker

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/viterin/vek"

	"github.com/katalvlaran/splitter/core"
	"github.com/katalvlaran/splitter/negsample"
)

// Option configures a Node2Vec walker.
type Option func(*Node2Vec)

// WithNumWalks sets how many walks start from every vertex (default 10).
func WithNumWalks(n int) Option { return func(w *Node2Vec) { w.numWalks = n } }

// WithWalkLength sets the walk length in nodes (default 80).
func WithWalkLength(l int) Option { return func(w *Node2Vec) { w.walkLength = l } }

// WithBias sets the node2vec return parameter p and in-out parameter q
// (defaults 1, 1 — uniform walks).
func WithBias(p, q float64) Option { return func(w *Node2Vec) { w.p, w.q = p, q } }

// WithDimensions sets the base embedding dimension (default 128).
func WithDimensions(d int) Option { return func(w *Node2Vec) { w.dimensions = d } }

// WithWindowSize sets the skip-gram context window of the base fit
// (default 10).
func WithWindowSize(ws int) Option { return func(w *Node2Vec) { w.windowSize = ws } }

// WithEpochs sets the number of passes over the walks in the base fit
// (default 1).
func WithEpochs(e int) Option { return func(w *Node2Vec) { w.epochs = e } }

// WithLearningRate sets the SGD learning rate of the base fit (default 0.025).
func WithLearningRate(lr float64) Option { return func(w *Node2Vec) { w.learningRate = lr } }

// WithNegatives sets the negative samples per positive pair in the base fit
// (default 5).
func WithNegatives(k int) Option { return func(w *Node2Vec) { w.negativeK = k } }

// WithSeed makes walk simulation and the base fit reproducible.
func WithSeed(seed int64) Option {
	return func(w *Node2Vec) { w.rng = rand.New(rand.NewSource(seed)) }
}

// Node2Vec is the default Walker: second-order random walks biased by the
// return parameter p and the in-out parameter q, and a single-machine
// skip-gram negative-sampling fit over the resulting walks.
type Node2Vec struct {
	numWalks     int
	walkLength   int
	p, q         float64
	dimensions   int
	windowSize   int
	epochs       int
	learningRate float64
	negativeK    int
	rng          *rand.Rand
}

// New validates the configuration and returns a Node2Vec walker.
func New(opts ...Option) (*Node2Vec, error) {
	w := &Node2Vec{
		numWalks:     10,
		walkLength:   80,
		p:            1,
		q:            1,
		dimensions:   128,
		windowSize:   10,
		epochs:       1,
		learningRate: 0.025,
		negativeK:    5,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(w)
	}

	switch {
	case w.numWalks < 1:
		return nil, ErrBadNumWalks
	case w.walkLength < 2:
		return nil, ErrBadWalkLength
	case w.p <= 0 || w.q <= 0:
		return nil, ErrBadBias
	case w.dimensions < 1:
		return nil, ErrBadDimensions
	case w.windowSize < 1:
		return nil, ErrBadWindow
	case w.epochs < 1:
		return nil, ErrBadEpochs
	case w.negativeK < 0:
		return nil, ErrBadNegatives
	case w.learningRate <= 0:
		return nil, ErrBadLearningRate
	}

	return w, nil
}

// SimulateWalks runs numWalks rounds over all vertices of g, starting one
// walk per vertex per round. Vertex start order is shuffled per round; walk
// content depends only on the walker's random source, so a fixed seed yields
// identical walks.
//
// Complexity: O(numWalks · V · walkLength · maxDeg).
func (w *Node2Vec) SimulateWalks(g *core.Graph) ([]core.Walk, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return nil, ErrNoVertices
	}

	walks := make([]core.Walk, 0, w.numWalks*len(vertices))
	starts := make([]string, len(vertices))
	for round := 0; round < w.numWalks; round++ {
		copy(starts, vertices)
		w.rng.Shuffle(len(starts), func(i, j int) { starts[i], starts[j] = starts[j], starts[i] })

		for _, start := range starts {
			walk, err := w.walkFrom(g, start)
			if err != nil {
				return nil, err
			}
			walks = append(walks, walk)
		}
	}

	return walks, nil
}

// walkFrom simulates one walk. The first hop is uniform; subsequent hops
// weight each candidate c by 1/p when c is the previous node, 1 when c
// neighbors the previous node, and 1/q otherwise. Dead ends truncate the
// walk.
func (w *Node2Vec) walkFrom(g *core.Graph, start string) (core.Walk, error) {
	walk := make(core.Walk, 0, w.walkLength)
	walk = append(walk, start)

	prev := ""
	current := start
	for len(walk) < w.walkLength {
		neighbors, err := g.Neighbors(current)
		if err != nil {
			return nil, fmt.Errorf("walker: neighbors of %q: %w", current, err)
		}
		if len(neighbors) == 0 {
			break // sink: the walk ends early
		}

		var next string
		if prev == "" || (w.p == 1 && w.q == 1) {
			next = neighbors[w.rng.Intn(len(neighbors))]
		} else {
			next = w.biasedChoice(g, prev, neighbors)
		}

		walk = append(walk, next)
		prev, current = current, next
	}

	return walk, nil
}

// biasedChoice draws the next node from the second-order transition weights.
func (w *Node2Vec) biasedChoice(g *core.Graph, prev string, neighbors []string) string {
	weights := make([]float64, len(neighbors))
	total := 0.0
	for i, c := range neighbors {
		switch {
		case c == prev:
			weights[i] = 1 / w.p
		case g.HasEdge(prev, c):
			weights[i] = 1
		default:
			weights[i] = 1 / w.q
		}
		total += weights[i]
	}

	r := w.rng.Float64() * total
	for i, weight := range weights {
		r -= weight
		if r <= 0 {
			return neighbors[i]
		}
	}

	return neighbors[len(neighbors)-1] // float round-off fallthrough
}

// LearnEmbedding fits the base embedding by skip-gram with negative sampling
// over the given walks: two tables (vertex and context), clipped context
// windows, and plain SGD on the sigmoid cross-entropy of each pair. The
// vertex table is returned as the embedding.
//
// Unlike the persona engine, boundary windows here are clipped rather than
// dropped; the base fit is a collaborator following the classic word2vec
// recipe, not the persona batch rule.
//
// Complexity: O(epochs · totalWalkLength · windowSize · (1+negativeK) · dim).
func (w *Node2Vec) LearnEmbedding(g *core.Graph, walks []core.Walk) (map[string][]float64, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	ix := core.NewIndex(g)
	if ix.Len() == 0 {
		return nil, ErrNoVertices
	}

	pool, err := negsample.Build(g, ix, negsample.WithRand(w.rng))
	if err != nil {
		return nil, fmt.Errorf("walker: building sample pool: %w", err)
	}

	vertexTable := w.randomTable(ix.Len())
	contextTable := w.randomTable(ix.Len())

	order := make([]int, len(walks))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < w.epochs; epoch++ {
		w.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, wi := range order {
			rows, rerr := ix.RowsOf(walks[wi])
			if rerr != nil {
				return nil, fmt.Errorf("walker: translating walk: %w", rerr)
			}
			if err = w.trainWalk(vertexTable, contextTable, rows, pool); err != nil {
				return nil, err
			}
		}
	}

	out := make(map[string][]float64, ix.Len())
	for row, id := range ix.IDs() {
		vec := make([]float64, w.dimensions)
		copy(vec, vertexTable[row])
		out[id] = vec
	}

	return out, nil
}

// trainWalk applies one SGD pass over all clipped-window pairs of a walk.
func (w *Node2Vec) trainWalk(vertexTable, contextTable [][]float64, rows []int, pool *negsample.Pool) error {
	for i, source := range rows {
		lo := i - w.windowSize
		if lo < 0 {
			lo = 0
		}
		hi := i + w.windowSize
		if hi > len(rows)-1 {
			hi = len(rows) - 1
		}
		for j := lo; j <= hi; j++ {
			if j == i {
				continue
			}
			w.updatePair(vertexTable[source], contextTable[rows[j]], 1)

			negatives, err := pool.Sample(w.negativeK)
			if err != nil {
				return fmt.Errorf("walker: drawing negatives: %w", err)
			}
			for _, neg := range negatives {
				if neg == rows[j] {
					continue
				}
				w.updatePair(vertexTable[source], contextTable[neg], 0)
			}
		}
	}

	return nil
}

// updatePair performs one SGD update on a (vertex, context) pair toward the
// given 0/1 label.
func (w *Node2Vec) updatePair(vertex, context []float64, label float64) {
	score := vek.Dot(vertex, context)
	pred := 1 / (1 + math.Exp(-score))
	grad := w.learningRate * (label - pred)

	for k := range vertex {
		vk := vertex[k]
		vertex[k] += grad * context[k]
		context[k] += grad * vk
	}
}

// randomTable allocates a rows×dim table with word2vec-style uniform init in
// [-0.5/dim, 0.5/dim].
func (w *Node2Vec) randomTable(rows int) [][]float64 {
	scale := 0.5 / float64(w.dimensions)
	table := make([][]float64, rows)
	for i := range table {
		row := make([]float64, w.dimensions)
		for k := range row {
			row[k] = (w.rng.Float64()*2 - 1) * scale
		}
		table[i] = row
	}

	return table
}
