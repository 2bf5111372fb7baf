// SPDX-License-Identifier: MIT
//
// File: save.go
// Role: Explicit persistence of run artifacts.

package trainer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/katalvlaran/splitter/embedding"
)

// SaveBaseEmbedding writes the frozen base table as JSON id→vector.
// Available from ModelReady on; earlier calls fail with ErrNotReady.
func (t *Trainer) SaveBaseEmbedding(path string) error {
	if t.store == nil {
		return fmt.Errorf("%w: base embedding (state %s)", ErrNotReady, t.state)
	}

	return t.store.Save(embedding.Base, path)
}

// SavePersonaEmbedding writes the persona table as JSON id→vector.
// Available from ModelReady on; earlier calls fail with ErrNotReady.
func (t *Trainer) SavePersonaEmbedding(path string) error {
	if t.store == nil {
		return fmt.Errorf("%w: persona embedding (state %s)", ErrNotReady, t.state)
	}

	return t.store.Save(embedding.Persona, path)
}

// SavePersonaGraph writes the persona graph as a line-oriented edge list.
// Available from SplitReady on; earlier calls fail with ErrNotReady.
func (t *Trainer) SavePersonaGraph(path string) error {
	if t.personaGraph == nil {
		return fmt.Errorf("%w: persona graph (state %s)", ErrNotReady, t.state)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trainer: creating %s: %w", path, err)
	}
	defer f.Close()

	if err = t.personaGraph.WriteEdgeList(f); err != nil {
		return err
	}

	return f.Close()
}

// SavePersonaGraphMapping writes the persona→original mapping as a JSON
// object. Available from SplitReady on; earlier calls fail with ErrNotReady.
func (t *Trainer) SavePersonaGraphMapping(path string) error {
	if t.personaToOriginal == nil {
		return fmt.Errorf("%w: persona mapping (state %s)", ErrNotReady, t.state)
	}

	data, err := json.Marshal(t.personaToOriginal)
	if err != nil {
		return fmt.Errorf("trainer: encoding persona mapping: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("trainer: writing %s: %w", path, err)
	}

	return nil
}
