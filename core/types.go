// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Graph type, configuration options and sentinel errors.
// Policy:
//   - No algorithms here; mutation and query methods live in graph.go.
//   - Concurrency model: one sync.RWMutex (mu) guards vertices and adjacency.

package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that a vertex ID is the empty string.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrUnknownID indicates an Index lookup for an id that is not part of the bijection.
	ErrUnknownID = errors.New("core: id not present in index")

	// ErrBadEdgeList indicates a malformed line in an edge-list stream.
	ErrBadEdgeList = errors.New("core: malformed edge-list line")
)

// Walk is one random walk over a graph: an ordered, fixed-length sequence of
// vertex IDs. Walks are produced by a walker.Walker and consumed by the
// skip-gram batch builder (after translation to table rows via an Index).
type Walk []string

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected sets the orientation for all edges
// (true = directed, false = undirected, the default).
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is the core in-memory graph data structure.
//
// It stores vertices in a set and edges as a nested adjacency map
// adjacency[from][to] = struct{}{}. Undirected edges are mirrored in both
// directions; edgeCount counts each undirected edge once.
type Graph struct {
	mu sync.RWMutex // guards vertices, adjacency and edgeCount

	// Configuration flags, immutable after construction.
	directed   bool // edge orientation
	allowLoops bool // allow self-loops

	// Storage.
	vertices  map[string]struct{}
	adjacency map[string]map[string]struct{}
	edgeCount int
}

// NewGraph creates an empty Graph with the given options.
// By default the Graph is undirected with self-loops disabled.
// Complexity: O(1).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]struct{}),
		adjacency: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
