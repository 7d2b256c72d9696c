// Package render produces visual output for link graphs.
//
// # Overview
//
// This package converts a graph plus its estimated rank scores into
// Graphviz DOT source, and optionally renders that source to SVG
// in-process. Node size and fill intensity scale with rank, so the
// most important pages stand out at a glance.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := render.ToDOT(g, scores, render.Options{})
//	svg, err := render.SVG(dot)
//
// The DOT source can also be saved and processed with external
// Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package render
