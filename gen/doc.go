// Package gen builds small deterministic graph fixtures: complete graphs,
// cycles, paths and stars over prefix-numbered vertex IDs. The trainer's
// tests and examples use these instead of hand-written edge lists.
//
// Construction is compositional: Build applies any number of Constructors to
// one graph in order, so a fixture can be, say, a cycle plus a star sharing
// vertex IDs. Same constructors and options always yield the identical graph.
package gen
