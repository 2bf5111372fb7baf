// SPDX-License-Identifier: MIT
//
// File: index.go
// Role: Stable id↔row bijection between vertex IDs and embedding-table rows.
//
// Every embedding table in splitter is addressed by a dense 0-based row range.
// Index pins the assignment of graph vertices to rows for the lifetime of a
// training run: row i is the i-th vertex in sorted ID order. There is no
// reserved padding row; absent vertices surface as ErrUnknownID instead of a
// sentinel index.

package core

import "fmt"

// Index is an immutable bijection between vertex IDs and table rows.
// Build one per embedding table (base graph, persona graph) and share it
// between the walker, the batch builder and the embedding store.
type Index struct {
	rows map[string]int
	ids  []string
}

// NewIndex builds an Index over the vertices of g, assigning rows in sorted
// ID order. The assignment is deterministic for a fixed vertex set.
// Complexity: O(V log V).
func NewIndex(g *Graph) *Index {
	ids := g.Vertices()
	rows := make(map[string]int, len(ids))
	for i, id := range ids {
		rows[id] = i
	}

	return &Index{rows: rows, ids: ids}
}

// Len returns the number of indexed IDs (= table row count).
// Complexity: O(1).
func (ix *Index) Len() int { return len(ix.ids) }

// Row returns the table row for id, or ErrUnknownID.
// Complexity: O(1).
func (ix *Index) Row(id string) (int, error) {
	r, ok := ix.rows[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownID, id)
	}

	return r, nil
}

// ID returns the vertex ID stored at row, or "" when row is out of range.
// Complexity: O(1).
func (ix *Index) ID(row int) string {
	if row < 0 || row >= len(ix.ids) {
		return ""
	}

	return ix.ids[row]
}

// IDs returns the indexed IDs in row order. The returned slice is shared;
// callers must not mutate it.
// Complexity: O(1).
func (ix *Index) IDs() []string { return ix.ids }

// RowsOf translates a Walk into table rows, failing on the first unknown ID.
// Complexity: O(len(walk)).
func (ix *Index) RowsOf(walk Walk) ([]int, error) {
	out := make([]int, len(walk))
	for i, id := range walk {
		r, err := ix.Row(id)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}

	return out, nil
}
