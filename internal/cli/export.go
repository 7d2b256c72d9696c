package cli

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkrank/pkg/errors"
	"github.com/matzehuels/linkrank/pkg/rank"
	"github.com/matzehuels/linkrank/pkg/render"
	"github.com/matzehuels/linkrank/pkg/report"
	"github.com/matzehuels/linkrank/pkg/webgraph"
)

// exportCommand creates the export command for writing graph drawings.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format   string
		output   string
		ranks    string
		maxNodes int
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the link graph as a Graphviz drawing",
		Long: `Export the link graph as a Graphviz drawing.

The edge list is read from the file argument or standard input and written
as DOT source or a rendered SVG. When a ranking result (produced by
'rank -o') is supplied via --ranks, node size and fill scale with rank.

Examples:
  linkrank export links.txt -f dot                     # DOT to stdout
  linkrank export links.txt -f svg -o graph.svg        # rendered SVG
  linkrank rank links.txt -o ranks.json
  linkrank export links.txt --ranks ranks.json -f svg -o graph.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(args, format, output, ranks, maxNodes)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&ranks, "ranks", "", "ranking result JSON for rank-scaled styling")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "render only the N highest ranked nodes (0 = all)")

	return cmd
}

func (c *CLI) runExport(args []string, format, output, ranks string, maxNodes int) error {
	if format != "dot" && format != "svg" {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (must be dot or svg)", format)
	}

	input, _, err := readInput(args)
	if err != nil {
		return err
	}

	g, err := webgraph.Build(bytes.NewReader(input))
	if err != nil {
		return err
	}
	if g.NodeCount() == 0 {
		return errors.New(errors.ErrCodeEmptyGraph, "input contains no edges")
	}

	opts := render.Options{MaxNodes: maxNodes}
	if ranks != "" {
		scores, err := loadScores(ranks)
		if err != nil {
			return err
		}
		opts.Scores = scores
	}

	dot := render.ToDOT(g, opts)
	data := []byte(dot)

	if format == "svg" {
		spin := newSpinner("Rendering SVG")
		spin.Start()
		data, err = render.SVG(dot)
		if err != nil {
			spin.StopWithError("SVG rendering failed")
			return errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		spin.Stop()
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}

	printSuccess("Exported %d nodes as %s", g.NodeCount(), format)
	printFile(output)
	return nil
}

// loadScores reads a ranking result file and converts its entries back
// into a score map.
func loadScores(path string) (rank.Scores, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
		}
		return nil, err
	}
	defer f.Close()

	res, err := report.Read(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse ranking result %s", path)
	}

	scores := make(rank.Scores, len(res.Entries))
	for _, e := range res.Entries {
		scores[e.Node] = e.Score
	}
	return scores, nil
}
