package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkrank/pkg/errors"
	"github.com/matzehuels/linkrank/pkg/pipeline"
	"github.com/matzehuels/linkrank/pkg/rank"
	"github.com/matzehuels/linkrank/pkg/report"
)

// rankOpts holds the command-line flags for the rank command.
type rankOpts struct {
	method      string // stochastic or distribution
	repeats     int    // random-walk transitions (stochastic)
	steps       int    // fixed-point iterations (distribution)
	number      int    // reported top entries
	seed        int64  // pinned RNG seed
	seedSet     bool   // whether --seed was given
	output      string // JSON output file (text to stdout if empty)
	cacheMode   string // file, redis or off
	refresh     bool   // bypass cache reads
	interactive bool   // open the TUI browser
}

// rankCommand creates the rank command.
func (c *CLI) rankCommand() *cobra.Command {
	var opts rankOpts

	cmd := &cobra.Command{
		Use:   "rank [file]",
		Short: "Estimate page ranks from an edge list",
		Long: `Estimate page ranks from an edge list.

The input is a text file with one link per line, written as two
whitespace-separated page identifiers (source and target). When no file
argument is given, the edge list is read from standard input.

Two estimation methods are available:

  stochastic     counts the page visits of a random surfer (default)
  distribution   iterates the rank distribution to its fixed point

Scores are printed as percentages, highest first:

  linkrank rank links.txt
  linkrank rank links.txt -m distribution -s 200 -n 10
  cat links.txt | linkrank rank --seed 42 -o ranks.json

Reproducible runs (distribution, or stochastic with --seed) are cached;
use --refresh to force recomputation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.applyConfig(cmd, c.Config)
			if err := opts.validate(); err != nil {
				return err
			}
			return c.runRank(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.method, "method", "m", pipeline.DefaultMethod, "estimation method: stochastic or distribution")
	cmd.Flags().IntVarP(&opts.repeats, "repeats", "r", pipeline.DefaultWalkSteps, "random-walk transitions (stochastic)")
	cmd.Flags().IntVarP(&opts.steps, "steps", "s", pipeline.DefaultIterations, "fixed-point iterations (distribution)")
	cmd.Flags().IntVarP(&opts.number, "number", "n", pipeline.DefaultTopN, "number of top pages to report")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "pin the random seed for reproducible stochastic runs")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result as JSON to this file")
	cmd.Flags().StringVar(&opts.cacheMode, "cache", cacheModeFile, "cache backend: file, redis or off")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the ranking in an interactive table")

	return cmd
}

// applyConfig overlays config-file values onto flags the user did not set.
// The config is loaded after flag registration, so defaults cannot be
// bound directly.
func (o *rankOpts) applyConfig(cmd *cobra.Command, cfg Config) {
	flags := cmd.Flags()
	if !flags.Changed("method") && cfg.Method != "" {
		o.method = cfg.Method
	}
	if !flags.Changed("repeats") && cfg.WalkSteps != 0 {
		o.repeats = cfg.WalkSteps
	}
	if !flags.Changed("steps") && cfg.Iterations != 0 {
		o.steps = cfg.Iterations
	}
	if !flags.Changed("number") && cfg.Top != 0 {
		o.number = cfg.Top
	}
	if !flags.Changed("cache") && cfg.Cache != "" {
		o.cacheMode = cfg.Cache
	}
	o.seedSet = flags.Changed("seed")
}

// validate rejects flag values before any work happens. Unlike the
// library, the CLI requires strictly positive step budgets.
func (o *rankOpts) validate() error {
	if !rank.ValidMethod(o.method) {
		return errors.New(errors.ErrCodeInvalidMethod, "unknown method %q (must be stochastic or distribution)", o.method)
	}
	if o.repeats <= 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "repeats must be positive, got %d", o.repeats)
	}
	if o.steps <= 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "steps must be positive, got %d", o.steps)
	}
	if o.number <= 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "number must be positive, got %d", o.number)
	}
	return nil
}

// runRank executes the ranking pipeline and renders the result.
func (c *CLI) runRank(cmd *cobra.Command, args []string, opts rankOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	input, name, err := readInput(args)
	if err != nil {
		return err
	}
	logger.Debugf("Read %d bytes from %s", len(input), name)

	runner, err := c.newRunner(ctx, opts.cacheMode)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Input:      input,
		Method:     opts.method,
		WalkSteps:  opts.repeats,
		Iterations: opts.steps,
		TopN:       opts.number,
		Refresh:    opts.refresh,
		Logger:     logger,
	}
	if opts.seedSet {
		seed := opts.seed
		popts.Seed = &seed
	}

	// Interactive terminals get a live progress bar on stderr; piped runs
	// log the milestones instead.
	if isTerminal(os.Stderr) {
		bar := newWalkBar(os.Stderr, "Ranking", 60)
		popts.Progress = bar.update
		defer bar.finish()
	} else {
		popts.Progress = func(done, total int) {
			logger.Debugf("Ranking %d/%d steps", done, total)
		}
	}

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Ranked %d pages over %d links", res.Nodes, res.Edges))

	if opts.interactive {
		return browseRanking(res)
	}
	return c.writeResult(res, opts.output)
}

// writeResult renders the result as text to stdout, or as JSON when an
// output path is given.
func (c *CLI) writeResult(res *report.Result, output string) error {
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := report.Write(res, f); err != nil {
			return err
		}
		printSuccess("Ranked %d pages", res.Nodes)
		printFile(output)
		printStats(res.Nodes, res.Edges, res.Cached)
		return nil
	}

	if err := report.WriteText(res, os.Stdout); err != nil {
		return err
	}
	printStats(res.Nodes, res.Edges, res.Cached)
	printDetail("%s · %d steps · %s", res.Method, res.Steps, time.Duration(res.Elapsed).Round(time.Millisecond))
	return nil
}

// readInput reads the edge list from the file argument or stdin.
func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin", nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
		}
		return nil, "", err
	}
	return data, path, nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
