// SPDX-License-Identifier: MIT
//
// File: edgelist.go
// Role: Line-oriented "node node" edge-list serialization.
//
// The format is one edge per line, two whitespace-separated vertex IDs.
// Lines beginning with '#' and blank lines are skipped on read. This is the
// same format the persona graph is persisted in.

package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteEdgeList writes g as a line-oriented edge list, one "from to" pair per
// line, in the deterministic order of Edges().
// Complexity: O(E log E).
func (g *Graph) WriteEdgeList(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range g.Edges() {
		if _, err := fmt.Fprintf(bw, "%s %s\n", e[0], e[1]); err != nil {
			return fmt.Errorf("core: writing edge list: %w", err)
		}
	}

	return bw.Flush()
}

// ReadEdgeList parses a line-oriented edge list into a new Graph built with
// the given options. Malformed lines (not exactly two fields) return
// ErrBadEdgeList wrapped with the line number.
// Complexity: O(E).
func ReadEdgeList(r io.Reader, opts ...GraphOption) (*Graph, error) {
	g := NewGraph(opts...)
	sc := bufio.NewScanner(r)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadEdgeList, line, text)
		}
		if err := g.AddEdge(fields[0], fields[1]); err != nil {
			return nil, fmt.Errorf("core: edge list line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("core: reading edge list: %w", err)
	}

	return g, nil
}
