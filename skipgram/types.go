// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Batch value object and Builder configuration with sentinel errors.

package skipgram

import "errors"

// Sentinel errors for builder construction and batch assembly.
var (
	// ErrBadWindow indicates a window size < 1.
	ErrBadWindow = errors.New("skipgram: window size must be >= 1")

	// ErrBadNegative indicates a negative count < 0.
	ErrBadNegative = errors.New("skipgram: negative sample count must be >= 0")

	// ErrNilPool indicates that no negative-sample pool was provided.
	ErrNilPool = errors.New("skipgram: negative-sample pool is nil")

	// ErrRowOutOfRange indicates a walk row outside the persona table,
	// i.e. a walk that does not belong to the indexed persona graph.
	ErrRowOutOfRange = errors.New("skipgram: walk row outside persona table")
)

// Batch carries the five parallel sequences of one mini-batch. It is a plain
// value object: built fresh per mini-batch, handed to one optimizer step,
// then reset. All row values address the persona embedding table except
// Personas, which addresses the base table.
type Batch struct {
	Sources     []int     // persona rows, each positive source replicated (negativeK+1)×
	Contexts    []int     // persona rows, positives then pool draws
	Targets     []float64 // 1.0 for positive pairs, 0.0 for negatives
	PureSources []int     // persona rows, one per positive pair
	Personas    []int     // base rows owning each positive source
}

// NewBatch returns an empty batch.
func NewBatch() *Batch { return &Batch{} }

// Len returns the total number of (source, context, target) examples.
func (b *Batch) Len() int { return len(b.Sources) }

// Positives returns P, the number of positive pairs accumulated so far.
func (b *Batch) Positives() int { return len(b.PureSources) }

// Reset empties all five sequences, keeping their capacity for the next
// mini-batch.
func (b *Batch) Reset() {
	b.Sources = b.Sources[:0]
	b.Contexts = b.Contexts[:0]
	b.Targets = b.Targets[:0]
	b.PureSources = b.PureSources[:0]
	b.Personas = b.Personas[:0]
}
