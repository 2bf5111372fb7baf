// SPDX-License-Identifier: MIT
//
// File: save.go
// Role: Flat-file persistence of id→vector mappings.
//
// Embeddings are written as a single JSON object keyed by stringified node
// id, one array of D floats per node. encoding/json emits object keys in
// sorted order, so output files are byte-stable for a fixed table.

package embedding

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save writes table t to path as JSON {"id": [v0, ..., vD-1], ...}.
// Complexity: O(rows·dim).
func (s *Store) Save(t Table, path string) error {
	ix := s.Index(t)
	m := s.table(t)

	out := make(map[string][]float64, ix.Len())
	for row, id := range ix.IDs() {
		vec := make([]float64, s.dim)
		copy(vec, m.RawRowView(row))
		out[id] = vec
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("embedding: encoding table: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("embedding: writing %s: %w", path, err)
	}

	return nil
}
