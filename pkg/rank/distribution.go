package rank

import (
	"github.com/matzehuels/linkrank/pkg/webgraph"
)

// Distribution estimates node ranks by fixed-point probability iteration.
//
// Every node starts at probability 1/N. Each of the steps iterations moves
// the mass at every node with out-degree k > 0 along its outgoing edges in
// shares of p/k, counted with multiplicity. Mass at a node with no
// outgoing edges is dropped, not redistributed (see the package doc); no
// renormalization is performed between iterations. With steps == 0 the
// uniform initial distribution is returned.
//
// The result is fully deterministic: identical graph and step count always
// yield identical output.
//
// Returns an EMPTY_GRAPH error for a graph with no nodes and an
// INVALID_PARAMETER error for negative steps.
func Distribution(g *webgraph.Graph, steps int, opts ...Option) (Scores, error) {
	if err := validate(g, steps); err != nil {
		return nil, err
	}
	o := applyOptions(opts)

	nodes := g.Nodes()
	prob := make(Scores, len(nodes))
	initial := 1 / float64(len(nodes))
	for _, id := range nodes {
		prob[id] = initial
	}

	for step := 1; step <= steps; step++ {
		next := make(Scores, len(nodes))
		for _, id := range nodes {
			next[id] = 0
		}
		for _, id := range nodes {
			out := g.Out(id)
			if len(out) == 0 {
				continue // dangling: mass is dropped
			}
			p := prob[id] / float64(len(out))
			for _, target := range out {
				next[target] += p
			}
		}
		prob = next

		if o.progress != nil && step%o.every == 0 {
			o.progress(step, steps)
		}
	}
	if o.progress != nil {
		o.progress(steps, steps)
	}

	return prob, nil
}
