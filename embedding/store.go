// Package embedding holds the two dense embedding tables of a training run:
// a frozen base table (one vector per original node, pretrained by the base
// walker) and a trainable persona table (one vector per persona node).
//
// Both tables are gonum mat.Dense matrices addressed by the dense row ranges
// of their core.Index. The persona table starts, before any gradient step,
// as an exact copy of each persona's owning base row — the anchor the
// regularization term pulls every persona back toward. Table sizes are fixed
// at construction; there is no resizing during training.
package embedding

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/splitter/core"
)

// Table selects one of the two embedding tables of a Store.
type Table int

const (
	// Base is the frozen original-node table.
	Base Table = iota

	// Persona is the trainable persona-node table.
	Persona
)

// Sentinel errors for store construction and lookup.
var (
	// ErrBadDimension indicates a vector dimension < 1.
	ErrBadDimension = errors.New("embedding: dimension must be >= 1")

	// ErrEmptyIndex indicates an index with no rows; the caller should have
	// failed fast on an empty graph before reaching the store.
	ErrEmptyIndex = errors.New("embedding: index has no rows")

	// ErrMissingVector indicates that baseVectors lacks an indexed node.
	ErrMissingVector = errors.New("embedding: base vector missing")

	// ErrDimensionMismatch indicates a base vector of the wrong length.
	ErrDimensionMismatch = errors.New("embedding: base vector dimension mismatch")

	// ErrMissingOwner indicates a persona absent from the persona→original mapping.
	ErrMissingOwner = errors.New("embedding: persona has no owner")

	// ErrRowOutOfRange indicates a gather row outside the addressed table.
	ErrRowOutOfRange = errors.New("embedding: row outside table")
)

// Store owns the base and persona tables plus the indices addressing them.
type Store struct {
	dim          int
	base         *mat.Dense // frozen after construction
	persona      *mat.Dense // mutated only by the optimizer step
	baseIndex    *core.Index
	personaIndex *core.Index
	ownerRows    []int // persona row -> owning base row
}

// NewStore builds both tables.
//
// The base table is populated row-for-row from baseVectors; the persona table
// row of persona p is initialized as a copy of the base row of
// personaToOriginal[p]. The copy is exact (bit-for-bit) so the
// initialization invariant is directly testable.
//
// Errors:
//   - ErrBadDimension      if dim < 1.
//   - ErrEmptyIndex        if either index is empty.
//   - ErrMissingVector     if baseVectors lacks an indexed original node.
//   - ErrDimensionMismatch if any base vector length != dim.
//   - ErrMissingOwner      if a persona has no entry in personaToOriginal.
//   - core.ErrUnknownID    if an owner is not in the base index.
//
// Complexity: O((|base| + |persona|)·dim).
func NewStore(
	dim int,
	baseIndex *core.Index,
	baseVectors map[string][]float64,
	personaIndex *core.Index,
	personaToOriginal map[string]string,
) (*Store, error) {
	if dim < 1 {
		return nil, ErrBadDimension
	}
	if baseIndex.Len() == 0 || personaIndex.Len() == 0 {
		return nil, ErrEmptyIndex
	}

	base := mat.NewDense(baseIndex.Len(), dim, nil)
	for row, id := range baseIndex.IDs() {
		vec, ok := baseVectors[id]
		if !ok {
			return nil, fmt.Errorf("%w: node %q", ErrMissingVector, id)
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: node %q has %d, want %d", ErrDimensionMismatch, id, len(vec), dim)
		}
		base.SetRow(row, vec)
	}

	persona := mat.NewDense(personaIndex.Len(), dim, nil)
	ownerRows := make([]int, personaIndex.Len())
	for row, id := range personaIndex.IDs() {
		owner, ok := personaToOriginal[id]
		if !ok {
			return nil, fmt.Errorf("%w: persona %q", ErrMissingOwner, id)
		}
		ownerRow, err := baseIndex.Row(owner)
		if err != nil {
			return nil, fmt.Errorf("embedding: owner of persona %q: %w", id, err)
		}
		persona.SetRow(row, base.RawRowView(ownerRow))
		ownerRows[row] = ownerRow
	}

	return &Store{
		dim:          dim,
		base:         base,
		persona:      persona,
		baseIndex:    baseIndex,
		personaIndex: personaIndex,
		ownerRows:    ownerRows,
	}, nil
}

// Dim returns the embedding dimension D.
func (s *Store) Dim() int { return s.dim }

// Rows returns the row count of table t.
func (s *Store) Rows(t Table) int {
	if t == Base {
		return s.baseIndex.Len()
	}

	return s.personaIndex.Len()
}

// OwnerRows returns the persona-row → base-row ownership mapping. The slice
// is shared and immutable for the duration of training.
func (s *Store) OwnerRows() []int { return s.ownerRows }

// Index returns the id↔row index addressing table t.
func (s *Store) Index(t Table) *core.Index {
	if t == Base {
		return s.baseIndex
	}

	return s.personaIndex
}

// Row returns a live view of one table row. Persona rows are mutated in
// place by the optimizer; Base rows must be treated as read-only.
//
// Complexity: O(1).
func (s *Store) Row(t Table, row int) ([]float64, error) {
	m := s.table(t)
	r, _ := m.Dims()
	if row < 0 || row >= r {
		return nil, fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, row, r)
	}

	return m.RawRowView(row), nil
}

// Gather copies the requested rows of table t into a fresh len(rows)×D
// matrix — the pure gather operation of the lookup contract.
//
// Complexity: O(len(rows)·dim).
func (s *Store) Gather(t Table, rows []int) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	m := s.table(t)
	total, _ := m.Dims()

	out := mat.NewDense(len(rows), s.dim, nil)
	for i, row := range rows {
		if row < 0 || row >= total {
			return nil, fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, row, total)
		}
		out.SetRow(i, m.RawRowView(row))
	}

	return out, nil
}

// PersonaTable exposes the trainable table for the optimizer step. The base
// table deliberately has no mutable accessor.
func (s *Store) PersonaTable() *mat.Dense { return s.persona }

func (s *Store) table(t Table) *mat.Dense {
	if t == Base {
		return s.base
	}

	return s.persona
}
