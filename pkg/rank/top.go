package rank

import (
	"sort"

	"github.com/matzehuels/linkrank/pkg/errors"
	"github.com/matzehuels/linkrank/pkg/webgraph"
)

// Entry is one (node, score) pair in a ranking report.
type Entry struct {
	Node  string  `json:"node"`
	Score float64 `json:"score"`
}

// Top returns the n highest-scored entries, score descending.
//
// Ties are broken by the graph's node insertion order (first-seen order in
// the input), which makes the result deterministic for a given input file.
// n larger than the node count returns all entries; n == 0 returns an
// empty slice; negative n is an INVALID_PARAMETER error.
func Top(g *webgraph.Graph, scores Scores, n int) ([]Entry, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "result count must not be negative, got %d", n)
	}

	entries := make([]Entry, 0, g.NodeCount())
	for _, id := range g.Nodes() {
		entries = append(entries, Entry{Node: id, Score: scores[id]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}
