package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/linkrank/pkg/rank"
	"github.com/matzehuels/linkrank/pkg/webgraph"
)

// Options configures DOT generation.
type Options struct {
	// Scores attaches rank scores to nodes. When non-nil, node labels
	// include the score as a percentage and node styling scales with rank.
	Scores rank.Scores

	// MaxNodes caps the number of rendered nodes, keeping the highest
	// ranked ones. Zero means no cap. Without scores the first nodes by
	// insertion order are kept.
	MaxNodes int
}

// ToDOT converts a graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [SVG] or external tools.
func ToDOT(g *webgraph.Graph, opts Options) string {
	keep := keepSet(g, opts)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	maxScore := 0.0
	for _, s := range opts.Scores {
		if s > maxScore {
			maxScore = s
		}
	}

	for _, id := range g.Nodes() {
		if keep != nil {
			if _, ok := keep[id]; !ok {
				continue
			}
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, nodeAttrs(id, opts.Scores, maxScore))
	}

	buf.WriteString("\n")
	for _, source := range g.Nodes() {
		if keep != nil {
			if _, ok := keep[source]; !ok {
				continue
			}
		}
		for _, target := range g.Out(source) {
			if keep != nil {
				if _, ok := keep[target]; !ok {
					continue
				}
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", source, target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// keepSet resolves the MaxNodes cap into a membership set.
// Returns nil when every node is kept.
func keepSet(g *webgraph.Graph, opts Options) map[string]struct{} {
	if opts.MaxNodes <= 0 || opts.MaxNodes >= g.NodeCount() {
		return nil
	}

	var ids []string
	if opts.Scores != nil {
		entries, err := rank.Top(g, opts.Scores, opts.MaxNodes)
		if err == nil {
			for _, e := range entries {
				ids = append(ids, e.Node)
			}
		}
	}
	if ids == nil {
		ids = g.Nodes()[:opts.MaxNodes]
	}

	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	return keep
}

func nodeAttrs(id string, scores rank.Scores, maxScore float64) string {
	if scores == nil {
		return fmt.Sprintf("label=%q", id)
	}

	score := scores[id]
	label := fmt.Sprintf("%s\n%.2f", id, 100*score)

	// Scale font size and fill with rank relative to the top node.
	rel := 0.0
	if maxScore > 0 {
		rel = score / maxScore
	}
	fontsize := 12 + 10*rel
	// Greyscale fill: top node darkest, zero-rank nodes white.
	grey := int(255 - 80*rel)
	fill := fmt.Sprintf("#%02x%02x%02x", grey, grey, 255)

	return fmt.Sprintf("label=%q, fontsize=%.0f, fillcolor=%q", label, fontsize, fill)
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
