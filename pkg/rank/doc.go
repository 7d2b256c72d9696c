// Package rank estimates the relative importance of nodes in a link graph.
//
// Two independent estimators are provided:
//
//   - [Stochastic]: a long random walk over the graph, counting node
//     visitation frequency. When the walk reaches a node with no outgoing
//     edges it restarts from a uniformly random node, which keeps the walk
//     live without an explicit damping factor.
//   - [Distribution]: fixed-point iteration of a probability vector, moving
//     each node's mass along its outgoing edges in equal shares.
//
// Both consume a read-only [webgraph.Graph] and return a [Scores] mapping
// covering every node in the graph.
//
// # Dangling mass is dropped
//
// The distribution estimator deliberately deviates from textbook PageRank:
// mass sitting at a node with zero outgoing edges is dropped at each
// iteration, not redistributed across the graph. Total probability is
// therefore non-increasing whenever dangling nodes exist, and sums to 1.0
// only for graphs where every node has at least one outgoing edge. No
// renormalization happens between iterations, so mass leakage stays
// visible in the results. Callers expecting standard random-surfer
// semantics should not use this estimator on graphs with dangling nodes.
//
// # Determinism
//
// [Distribution] is purely deterministic. [Stochastic] is a function of
// the supplied *rand.Rand: the same graph, step count, and seed always
// produce the same counts.
package rank
