// Package walker provides the random-walk collaborator of the training
// engine: simulation of (optionally biased) random walks over a core.Graph
// and a plain skip-gram fit that produces the base embedding the persona
// table is anchored to.
//
// The engine consumes this package only through the Walker interface, so the
// walk strategy is swappable; Node2Vec is the default implementation with
// the classic return (p) / in-out (q) second-order bias. p == q == 1
// degenerates to uniform first-order walks.
package walker

import (
	"errors"

	"github.com/katalvlaran/splitter/core"
)

// Sentinel errors shared by walker implementations.
var (
	// ErrNilGraph indicates a nil graph was passed to a walk or fit call.
	ErrNilGraph = errors.New("walker: graph is nil")

	// ErrNoVertices indicates a graph with no vertices to walk.
	ErrNoVertices = errors.New("walker: graph has no vertices")

	// ErrBadWalkLength indicates a configured walk length < 2.
	ErrBadWalkLength = errors.New("walker: walk length must be >= 2")

	// ErrBadNumWalks indicates a configured walk count < 1.
	ErrBadNumWalks = errors.New("walker: walks per vertex must be >= 1")

	// ErrBadBias indicates a non-positive p or q bias parameter.
	ErrBadBias = errors.New("walker: p and q must be positive")

	// ErrBadDimensions indicates an embedding dimension < 1.
	ErrBadDimensions = errors.New("walker: dimensions must be >= 1")

	// ErrBadWindow indicates a skip-gram window < 1.
	ErrBadWindow = errors.New("walker: window size must be >= 1")

	// ErrBadEpochs indicates an epoch count < 1.
	ErrBadEpochs = errors.New("walker: epochs must be >= 1")

	// ErrBadNegatives indicates a negative sample count < 0.
	ErrBadNegatives = errors.New("walker: negative sample count must be >= 0")

	// ErrBadLearningRate indicates a learning rate <= 0.
	ErrBadLearningRate = errors.New("walker: learning rate must be positive")
)

// Walker simulates random walks over a graph and fits a base embedding from
// them. Implementations must expose deterministic behavior under a fixed
// seed; the engine relies on that for reproducible runs.
type Walker interface {
	// SimulateWalks produces the configured number of walks per vertex.
	// Walks may come back shorter than the configured length when a
	// directed walk hits a sink.
	SimulateWalks(g *core.Graph) ([]core.Walk, error)

	// LearnEmbedding fits one vector per vertex of g from the given walks
	// via skip-gram with negative sampling. The returned mapping covers
	// every vertex of g.
	LearnEmbedding(g *core.Graph, walks []core.Walk) (map[string][]float64, error)
}
