// Package splitter learns persona embeddings for graphs — one vector per
// structural role of a node instead of one averaged vector per node.
//
// 🚀 What is splitter?
//
//	A training engine that takes a plain edge list and produces:
//		• Base embeddings: one node2vec-style vector per original node
//		• Persona graph: each node split into role-specific persona nodes
//		• Persona embeddings: trained to predict walk co-occurrence while
//		  staying anchored to the owning node's base vector
//
// ✨ Why choose splitter?
//
//   - Small, explicit API – build a graph, pick a walker, call Fit
//   - Deterministic by default – fixed seeds reproduce runs exactly
//   - Swappable collaborators – walk simulation and ego splitting sit
//     behind two narrow interfaces
//
// Under the hood, everything is organized under focused subpackages:
//
//	core/       — thread-safe Graph, dense id↔row Index, edge-list I/O
//	walker/     — biased random walks + skip-gram base embedding fit
//	ego/        — the persona-split collaborator interface
//	negsample/  — smoothed-degree negative-sample pool
//	skipgram/   — window pairing and mini-batch assembly over walks
//	embedding/  — base & persona tables with anchor initialization
//	model/      — combined skip-gram + regularization loss and gradients
//	optim/      — lazy row-wise Adam for the persona table
//	trainer/    — the staged training loop tying it all together
//	cmd/splitter — the command-line entry point
//
// Quick ASCII example:
//
//	    A───B          A₁──B      A₂
//	    │   │    ⇒     │          │
//	    C───D          C₁         C₂──D
//
//	a node serving two circles becomes two personas, each embedded near
//	the circle it belongs to.
//
// Dive into the trainer package docs for the full training lifecycle.
//
//	go get github.com/katalvlaran/splitter
package splitter
