// SPDX-License-Identifier: MIT
//
// File: gen.go
// Role: Constructor composition plus the standard topology constructors.

package gen

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/splitter/core"
)

// Sentinel errors for fixture construction.
var (
	// ErrTooFewVertices indicates a vertex count below the topology minimum.
	ErrTooFewVertices = errors.New("gen: too few vertices")

	// ErrNilConstructor indicates a nil constructor passed to Build.
	ErrNilConstructor = errors.New("gen: nil constructor")
)

// config holds resolved build options.
type config struct {
	prefix string
}

// Option adjusts fixture construction.
type Option func(*config)

// WithIDPrefix sets the vertex ID prefix (default "v"): vertex i becomes
// "<prefix><i>".
func WithIDPrefix(p string) Option { return func(c *config) { c.prefix = p } }

// Constructor applies one deterministic topology to g.
type Constructor func(g *core.Graph, cfg config) error

// Build creates a graph with the given graph options and applies all
// constructors in order. The first constructor error aborts the build.
//
// Complexity: sum of the constructors' costs.
func Build(gopts []core.GraphOption, opts []Option, cons ...Constructor) (*core.Graph, error) {
	cfg := config{prefix: "v"}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := core.NewGraph(gopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("gen: constructor %d: %w", i, ErrNilConstructor)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("gen: constructor %d: %w", i, err)
		}
	}

	return g, nil
}

// id renders the vertex ID for index i.
func (c config) id(i int) string { return c.prefix + strconv.Itoa(i) }

// Complete builds the complete simple graph K_n, n >= 1. Edge emission order
// is lexicographic by (i, j), i < j.
// Complexity: O(n²).
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < 1 {
			return fmt.Errorf("complete: n=%d: %w", n, ErrTooFewVertices)
		}
		for i := 0; i < n; i++ {
			if err := g.AddVertex(cfg.id(i)); err != nil {
				return err
			}
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := g.AddEdge(cfg.id(i), cfg.id(j)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// Cycle builds the n-vertex cycle C_n, n >= 3, with edges i—(i+1) mod n.
// Complexity: O(n).
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < 3 {
			return fmt.Errorf("cycle: n=%d: %w", n, ErrTooFewVertices)
		}
		for i := 0; i < n; i++ {
			if err := g.AddEdge(cfg.id(i), cfg.id((i+1)%n)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Path builds the n-vertex path P_n, n >= 2, with edges i—(i+1).
// Complexity: O(n).
func Path(n int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < 2 {
			return fmt.Errorf("path: n=%d: %w", n, ErrTooFewVertices)
		}
		for i := 0; i+1 < n; i++ {
			if err := g.AddEdge(cfg.id(i), cfg.id(i+1)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Star builds the n-vertex star S_n, n >= 2: vertex 0 is the hub, vertices
// 1..n-1 are leaves.
// Complexity: O(n).
func Star(n int) Constructor {
	return func(g *core.Graph, cfg config) error {
		if n < 2 {
			return fmt.Errorf("star: n=%d: %w", n, ErrTooFewVertices)
		}
		for i := 1; i < n; i++ {
			if err := g.AddEdge(cfg.id(0), cfg.id(i)); err != nil {
				return err
			}
		}

		return nil
	}
}
