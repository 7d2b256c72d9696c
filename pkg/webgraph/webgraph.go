package webgraph

import (
	"slices"

	"github.com/matzehuels/linkrank/pkg/errors"
)

// Graph is a directed multigraph over string node identifiers.
//
// The zero value is not usable - use New to create a Graph, or Build to
// construct one from an edge list. Once built, a Graph is meant to be read
// concurrently safe only in the absence of further AddEdge calls; the
// estimators treat it as immutable.
type Graph struct {
	order []string            // node IDs in first-seen order
	seen  map[string]struct{} // membership index for order
	out   map[string][]string // nodeID -> ordered targets, with multiplicity
	edges int
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		seen: make(map[string]struct{}),
		out:  make(map[string][]string),
	}
}

// AddEdge appends a directed edge from source to target.
//
// Both endpoints join the node set if they are new; the target is appended
// to the source's outgoing sequence even if an identical edge already
// exists (multiplicity is preserved). Returns an INVALID_INPUT error if
// either identifier is empty.
func (g *Graph) AddEdge(source, target string) error {
	if source == "" || target == "" {
		return errors.New(errors.ErrCodeInvalidInput, "edge endpoints must not be empty")
	}
	g.touch(source)
	g.touch(target)
	g.out[source] = append(g.out[source], target)
	g.edges++
	return nil
}

// touch registers an identifier in the node set, preserving first-seen order.
func (g *Graph) touch(id string) {
	if _, ok := g.seen[id]; ok {
		return
	}
	g.seen[id] = struct{}{}
	g.order = append(g.order, id)
}

// Nodes returns all node identifiers in first-seen order.
// The returned slice is a copy and safe to modify.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Out returns the ordered outgoing targets of the node, with multiplicity.
// Returns nil for dangling or unknown nodes. The returned slice is a
// read-only view; callers must not modify it.
func (g *Graph) Out(id string) []string { return g.out[id] }

// OutDegree returns the number of outgoing edges from the node, counted
// with multiplicity. Returns 0 for dangling or unknown nodes.
func (g *Graph) OutDegree(id string) int { return len(g.out[id]) }

// HasNode reports whether the identifier is a member of the node set.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.seen[id]
	return ok
}

// NodeCount returns the number of distinct node identifiers, counting
// nodes that only appear as targets.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the total number of (source, target) pairs, with
// multiplicity.
func (g *Graph) EdgeCount() int { return g.edges }

// Stats returns the node and edge counts in one call.
// This is the read-only query used for reporting.
func (g *Graph) Stats() (nodes, edges int) {
	return len(g.order), g.edges
}
