// Package webgraph provides the in-memory link graph that rank estimation
// runs against.
//
// A [Graph] is a directed multigraph over opaque string node identifiers
// (typically URLs). It is built once from an edge list and consumed
// read-only by the estimators in pkg/rank.
//
// # Edge lists
//
// The canonical input is a line-oriented text stream where each line holds
// exactly two whitespace-separated tokens:
//
//	http://example.org/a http://example.org/b
//	http://example.org/b http://example.org/a
//
// [Build] consumes such a stream and rejects any line that does not split
// into exactly two tokens, including blank lines. Parsing is strict by
// design: a malformed line aborts the build and no graph is returned.
//
// # Multigraph semantics
//
// Duplicate edges are preserved. A node linking to the same target three
// times makes that target three times as likely to be chosen during a
// random walk, and gives it three shares of probability mass during
// distribution iteration. Edge multiplicity is a weighting device, not
// noise.
//
// # Dangling nodes
//
// A node that only ever appears as a target is still a member of the node
// set; it simply has no outgoing edges. [Graph.Nodes] includes such nodes,
// and [Graph.OutDegree] reports 0 for them.
//
// # Ordering
//
// [Graph.Nodes] returns identifiers in first-seen order (the order they
// appeared in the input, sources before their targets on the same line).
// This order is the documented deterministic basis for uniform random
// choice and for tie-breaking in rank reports.
package webgraph
