// Package core provides the thread-safe in-memory Graph used everywhere in
// splitter, plus the small value types the training engine is built on:
// Walk (a random-walk node sequence) and Index (a stable id↔row bijection
// between graph vertices and embedding-table rows).
//
// The Graph G = (V,E) is deliberately narrower than a general graph toolkit:
//
//   - Directed or undirected edges (WithDirected); undirected by default.
//   - Optional self-loops (WithLoops); rejected by default.
//   - Simple graphs only — no parallel edges, no edge weights. Random-walk
//     embedding treats every edge as unit weight, so neither feature has a
//     consumer here.
//   - Deterministic iteration — Vertices(), Edges() and Neighbors() return
//     sorted results, so walks, pools and indices are reproducible given a
//     fixed seed.
//   - Degree() per vertex, the only structural statistic the negative-sample
//     pool needs.
//
// Concurrency:
//
//	A single sync.RWMutex guards vertices and adjacency together. Graphs are
//	built once and then read by many components (walker, ego splitter,
//	negative-sample pool); the write path is not a hot path.
//
// Serialization:
//
//	WriteEdgeList / ReadEdgeList implement the line-oriented "node node"
//	textual format shared with the persona-graph output files.
//
// Errors:
//
//	ErrEmptyVertexID  - vertex ID is the empty string.
//	ErrVertexNotFound - requested vertex does not exist.
//	ErrLoopNotAllowed - self-loop when loops are disabled.
//	ErrUnknownID      - an Index lookup for an id outside the bijection.
package core
