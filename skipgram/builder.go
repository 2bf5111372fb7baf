// SPDX-License-Identifier: MIT
//
// File: builder.go
// Role: Per-walk batch assembly: windowing, negative replication, ownership.

package skipgram

import (
	"fmt"

	"github.com/katalvlaran/splitter/negsample"
)

// Builder produces per-walk batch contributions. It is stateless between
// calls apart from the shared random source inside the pool, so one Builder
// serves a whole training run.
type Builder struct {
	window    int
	negativeK int
	ownerRows []int // persona-table row -> base-table row of the owning original node
	pool      *negsample.Pool
}

// NewBuilder validates the configuration and returns a Builder.
//
// ownerRows maps every persona-table row to the base-table row of its owning
// original node; it is the dense form of the persona→original mapping and is
// immutable for the duration of training.
//
// Errors:
//   - ErrBadWindow   if window < 1.
//   - ErrBadNegative if negativeK < 0.
//   - ErrNilPool     if pool is nil.
//
// Complexity: O(1).
func NewBuilder(window, negativeK int, ownerRows []int, pool *negsample.Pool) (*Builder, error) {
	if window < 1 {
		return nil, ErrBadWindow
	}
	if negativeK < 0 {
		return nil, ErrBadNegative
	}
	if pool == nil {
		return nil, ErrNilPool
	}

	return &Builder{
		window:    window,
		negativeK: negativeK,
		ownerRows: ownerRows,
		pool:      pool,
	}, nil
}

// AppendWalk appends one walk's replicate block to b.
//
// walk holds persona-table rows. Centers are positions w .. L-1-w; each emits
// its w right contexts in one pass over the walk, then its w left contexts in
// a second pass, offsets ascending within a center. A walk with L <= 2w
// contributes nothing and is not an error.
//
// Errors:
//   - ErrRowOutOfRange       if a walk row is outside the persona table.
//   - negsample.ErrEmptyPool if negatives are required and the pool is empty.
//
// Complexity: O(w·L + negativeK·w·L).
func (bl *Builder) AppendWalk(b *Batch, walk []int) error {
	length := len(walk)
	if length <= 2*bl.window {
		return nil // no center fits a full window on both sides
	}

	for _, row := range walk {
		if row < 0 || row >= len(bl.ownerRows) {
			return fmt.Errorf("%w: row %d, table size %d", ErrRowOutOfRange, row, len(bl.ownerRows))
		}
	}

	positives := 2 * bl.window * (length - 2*bl.window)
	sources := make([]int, 0, positives)
	contexts := make([]int, 0, positives)

	// Right contexts: (walk[i], walk[i+j]) for every full-window center i.
	for i := bl.window; i < length-bl.window; i++ {
		for j := 1; j <= bl.window; j++ {
			sources = append(sources, walk[i])
			contexts = append(contexts, walk[i+j])
		}
	}
	// Left contexts: (walk[i], walk[i-j]) over the same centers.
	for i := bl.window; i < length-bl.window; i++ {
		for j := 1; j <= bl.window; j++ {
			sources = append(sources, walk[i])
			contexts = append(contexts, walk[i-j])
		}
	}

	negatives, err := bl.pool.Sample(bl.negativeK * positives)
	if err != nil {
		return fmt.Errorf("skipgram: drawing negatives: %w", err)
	}

	// One regularization row per positive pair, unreplicated by negativeK.
	b.PureSources = append(b.PureSources, sources...)
	for _, s := range sources {
		b.Personas = append(b.Personas, bl.ownerRows[s])
	}

	// Replicate the positive source block (negativeK+1) times total.
	for r := 0; r <= bl.negativeK; r++ {
		b.Sources = append(b.Sources, sources...)
	}
	b.Contexts = append(b.Contexts, contexts...)
	b.Contexts = append(b.Contexts, negatives...)
	for i := 0; i < positives; i++ {
		b.Targets = append(b.Targets, 1.0)
	}
	for i := 0; i < bl.negativeK*positives; i++ {
		b.Targets = append(b.Targets, 0.0)
	}

	return nil
}
