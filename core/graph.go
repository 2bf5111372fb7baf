// SPDX-License-Identifier: MIT
//
// File: graph.go
// Role: Vertex/edge lifecycle and deterministic query surface.
//
// Determinism:
//   - Vertices(), Edges() and Neighbors() return results sorted
//     lexicographically ascending, so every downstream consumer (walk
//     simulation, pool construction, index building) is reproducible.

package core

import "sort"

// Directed reports whether edges are oriented.
// Complexity: O(1).
func (g *Graph) Directed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.directed
}

// AddVertex inserts a vertex if missing (idempotent).
// Returns ErrEmptyVertexID for the empty string.
// Complexity: O(1).
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.addVertexLocked(id)

	return nil
}

// addVertexLocked bootstraps vertex and adjacency storage. Caller holds mu.
func (g *Graph) addVertexLocked(id string) {
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.vertices[id] = struct{}{}
	g.adjacency[id] = make(map[string]struct{})
}

// AddEdge inserts the edge from→to, creating missing endpoints on the fly.
// Undirected graphs mirror the edge in both adjacency directions.
// Re-adding an existing edge is a no-op (simple graph semantics).
//
// Errors:
//   - ErrEmptyVertexID  if either endpoint ID is empty.
//   - ErrLoopNotAllowed if from == to and loops are disabled.
//
// Complexity: O(1).
func (g *Graph) AddEdge(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if from == to && !g.allowLoops {
		return ErrLoopNotAllowed
	}

	g.addVertexLocked(from)
	g.addVertexLocked(to)

	if _, ok := g.adjacency[from][to]; ok {
		return nil // already present; simple graphs hold at most one edge per pair
	}

	g.adjacency[from][to] = struct{}{}
	if !g.directed && from != to {
		g.adjacency[to][from] = struct{}{}
	}
	g.edgeCount++

	return nil
}

// HasVertex reports whether id is present.
// Complexity: O(1).
func (g *Graph) HasVertex(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.vertices[id]

	return ok
}

// HasEdge reports whether the edge from→to exists (either direction counts
// for undirected graphs).
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.adjacency[from][to]

	return ok
}

// VertexCount returns |V|.
// Complexity: O(1).
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns |E|, counting each undirected edge once.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// Vertices returns all vertex IDs sorted ascending.
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	g.mu.RUnlock()

	sort.Strings(ids)

	return ids
}

// Neighbors returns the IDs adjacent to id, sorted ascending.
// For directed graphs these are the out-neighbors.
// Returns ErrVertexNotFound for unknown vertices.
// Complexity: O(deg log deg).
func (g *Graph) Neighbors(id string) ([]string, error) {
	g.mu.RLock()
	bucket, ok := g.adjacency[id]
	if !ok {
		g.mu.RUnlock()

		return nil, ErrVertexNotFound
	}
	out := make([]string, 0, len(bucket))
	for to := range bucket {
		out = append(out, to)
	}
	g.mu.RUnlock()

	sort.Strings(out)

	return out, nil
}

// Degree returns the number of neighbors of id (out-degree for directed
// graphs; a self-loop contributes one). Returns ErrVertexNotFound for
// unknown vertices.
// Complexity: O(1).
func (g *Graph) Degree(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	bucket, ok := g.adjacency[id]
	if !ok {
		return 0, ErrVertexNotFound
	}

	return len(bucket), nil
}

// Edges returns every edge as a [from, to] pair, sorted by from then to.
// Undirected edges are reported once with from <= to.
// Complexity: O(E log E).
func (g *Graph) Edges() [][2]string {
	g.mu.RLock()
	pairs := make([][2]string, 0, g.edgeCount)
	for from, bucket := range g.adjacency {
		for to := range bucket {
			if !g.directed && from > to {
				continue // mirrored entry; the from <= to copy reports it
			}
			pairs = append(pairs, [2]string{from, to})
		}
	}
	g.mu.RUnlock()

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}

		return pairs[i][1] < pairs[j][1]
	})

	return pairs
}

// Clone returns a deep copy of the graph (same flags, same topology).
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := &Graph{
		directed:   g.directed,
		allowLoops: g.allowLoops,
		vertices:   make(map[string]struct{}, len(g.vertices)),
		adjacency:  make(map[string]map[string]struct{}, len(g.adjacency)),
		edgeCount:  g.edgeCount,
	}
	for id := range g.vertices {
		out.vertices[id] = struct{}{}
	}
	for from, bucket := range g.adjacency {
		cp := make(map[string]struct{}, len(bucket))
		for to := range bucket {
			cp[to] = struct{}{}
		}
		out.adjacency[from] = cp
	}

	return out
}
