package rank

import (
	"math/rand"

	"github.com/matzehuels/linkrank/pkg/errors"
	"github.com/matzehuels/linkrank/pkg/webgraph"
)

// Stochastic estimates node ranks by random walk.
//
// The walk starts at a uniformly random node and performs exactly steps
// transitions. From a node with outgoing edges it follows one chosen
// uniformly from the outgoing sequence, so a target linked k times is k
// times as likely to be chosen. From a node with no outgoing edges it
// jumps to a uniformly random node from the full node set - the global
// restart that keeps the walk from getting stuck. Every node landed on
// (including the start) has its visit counter incremented, so the counts
// always total steps+1.
//
// Outcomes are a pure function of rng; pass a seeded *rand.Rand for
// reproducible runs. With steps == 0 the result has exactly one node (the
// start) at count 1 and every other node at 0.
//
// Returns an EMPTY_GRAPH error for a graph with no nodes and an
// INVALID_PARAMETER error for negative steps or a nil rng.
func Stochastic(g *webgraph.Graph, steps int, rng *rand.Rand, opts ...Option) (Scores, error) {
	if err := validate(g, steps); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "random source must not be nil")
	}
	o := applyOptions(opts)

	nodes := g.Nodes()
	counts := make(Scores, len(nodes))
	for _, id := range nodes {
		counts[id] = 0
	}

	current := nodes[rng.Intn(len(nodes))]
	counts[current]++

	for step := 1; step <= steps; step++ {
		if out := g.Out(current); len(out) == 0 {
			current = nodes[rng.Intn(len(nodes))]
		} else {
			current = out[rng.Intn(len(out))]
		}
		counts[current]++

		if o.progress != nil && step%o.every == 0 {
			o.progress(step, steps)
		}
	}
	if o.progress != nil {
		o.progress(steps, steps)
	}

	return counts, nil
}
