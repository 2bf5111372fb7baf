// Package ego defines the persona-graph collaborator contract: splitting
// each node of a graph into one or more persona nodes based on its local
// neighborhood structure, and reporting which original node owns each
// persona.
//
// The ego-net splitting algorithm itself is out of scope for this module —
// the training engine only consumes the Splitter interface, so any external
// implementation plugs in. Identity is the bundled reference implementation:
// one persona per node, persona graph identical to the input. It is what the
// engine's own tests train against and a reasonable default for graphs whose
// nodes play a single role.
package ego

import (
	"errors"

	"github.com/katalvlaran/splitter/core"
)

// ErrNilGraph indicates that Split received a nil graph.
var ErrNilGraph = errors.New("ego: graph is nil")

// Splitter partitions every node of a graph into persona nodes.
//
// The returned persona graph must expose node iteration and per-node degree
// (any core.Graph does); the mapping assigns every persona node to exactly
// one original node and is immutable for the duration of training.
type Splitter interface {
	Split(g *core.Graph) (personaGraph *core.Graph, personaToOriginal map[string]string, err error)
}

// Identity is the trivial Splitter: every node is its own single persona and
// the persona graph is a copy of the input graph.
type Identity struct{}

// Split clones g and maps every vertex to itself.
// Complexity: O(V + E).
func (Identity) Split(g *core.Graph) (*core.Graph, map[string]string, error) {
	if g == nil {
		return nil, nil, ErrNilGraph
	}

	mapping := make(map[string]string, g.VertexCount())
	for _, id := range g.Vertices() {
		mapping[id] = id
	}

	return g.Clone(), mapping, nil
}
