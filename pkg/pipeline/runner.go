package pipeline

import (
	"bytes"
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkrank/pkg/cache"
	"github.com/matzehuels/linkrank/pkg/observability"
	"github.com/matzehuels/linkrank/pkg/rank"
	"github.com/matzehuels/linkrank/pkg/report"
	"github.com/matzehuels/linkrank/pkg/webgraph"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → estimate → report pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*report.Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// Stage 1: Load
	g, graphHash, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	nodes, edges := g.Stats()

	// Cache consult before spending work on estimation.
	cacheKey := r.rankKey(graphHash, opts)
	if cacheKey != "" && !opts.Refresh {
		if res, ok := r.lookup(ctx, cacheKey, opts); ok {
			return res, nil
		}
	}

	// Stage 2: Estimate
	scores, elapsed, err := r.Estimate(ctx, g, opts)
	if err != nil {
		return nil, err
	}

	// Stage 3: Report
	entries, err := rank.Top(g, scores, g.NodeCount())
	if err != nil {
		return nil, err
	}

	full := &report.Result{
		Method:  opts.Method,
		Steps:   opts.Steps(),
		Seed:    opts.Seed,
		Nodes:   nodes,
		Edges:   edges,
		Entries: entries,
		Elapsed: report.Duration(elapsed),
	}

	if cacheKey != "" {
		r.store(ctx, cacheKey, full)
	}

	return truncated(full, opts.TopN), nil
}

// Load parses the edge-list input and returns the graph together with
// the content hash used for cache keys.
func (r *Runner) Load(ctx context.Context, opts Options) (*webgraph.Graph, string, error) {
	r.applyLogger(&opts)
	observability.Rank().OnLoadStart(ctx)
	start := time.Now()

	g, err := webgraph.Build(bytes.NewReader(opts.Input))
	if err != nil {
		observability.Rank().OnLoadComplete(ctx, 0, 0, time.Since(start), err)
		return nil, "", err
	}

	nodes, edges := g.Stats()
	observability.Rank().OnLoadComplete(ctx, nodes, edges, time.Since(start), nil)
	opts.Logger.Info("loaded graph",
		"nodes", nodes,
		"edges", edges,
		"duration", time.Since(start))

	return g, cache.Hash(opts.Input), nil
}

// Estimate runs the selected estimation method and returns the scores
// with the elapsed wall time.
func (r *Runner) Estimate(ctx context.Context, g *webgraph.Graph, opts Options) (rank.Scores, time.Duration, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}

	steps := opts.Steps()
	observability.Rank().OnEstimateStart(ctx, opts.Method, steps)
	start := time.Now()

	var rankOpts []rank.Option
	if opts.Progress != nil {
		every := opts.ProgressEvery
		if every <= 0 {
			every = progressEvery(steps)
		}
		rankOpts = append(rankOpts, rank.WithProgress(opts.Progress, every))
	}

	var scores rank.Scores
	var err error
	switch opts.Method {
	case rank.MethodDistribution:
		scores, err = rank.Distribution(g, steps, rankOpts...)
	default:
		scores, err = rank.Stochastic(g, steps, r.rng(opts), rankOpts...)
	}

	elapsed := time.Since(start)
	observability.Rank().OnEstimateComplete(ctx, opts.Method, steps, elapsed, err)
	if err != nil {
		return nil, 0, err
	}

	opts.Logger.Info("estimated ranks",
		"method", opts.Method,
		"steps", steps,
		"duration", elapsed)

	return scores, elapsed, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger falls back to the runner's logger for runs that did not
// supply their own. Options validation would otherwise discard output.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// rankKey computes the cache key for a run, or "" when the run is not
// reproducible and must not touch the cache.
func (r *Runner) rankKey(graphHash string, opts Options) string {
	if !opts.Cacheable() {
		return ""
	}
	seed := ""
	if opts.Seed != nil {
		seed = strconv.FormatInt(*opts.Seed, 10)
	}
	return r.Keyer.RankKey(graphHash, opts.Method, opts.Steps(), seed)
}

// lookup serves a run from the cache when possible.
func (r *Runner) lookup(ctx context.Context, key string, opts Options) (*report.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}

	full, err := report.Unmarshal(data)
	if err != nil {
		// Corrupt entry, recompute.
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}

	observability.Cache().OnCacheHit(ctx, key)
	r.Logger.Debug("cache hit", "key", key)

	res := truncated(full, opts.TopN)
	res.Cached = true
	return res, true
}

// store caches a full (untruncated) result.
func (r *Runner) store(ctx context.Context, key string, full *report.Result) {
	data, err := report.Marshal(full)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLRank); err != nil {
		r.Logger.Debug("cache store failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// truncated returns a copy of res with entries cut to n.
func truncated(res *report.Result, n int) *report.Result {
	out := *res
	if n < len(out.Entries) {
		out.Entries = out.Entries[:n]
	}
	return &out
}

// rng builds the random source for a stochastic run. A pinned seed makes
// the run reproducible; otherwise the source is time-seeded.
func (r *Runner) rng(opts Options) *rand.Rand {
	if opts.Seed != nil {
		return rand.New(rand.NewSource(*opts.Seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// progressEvery picks a progress reporting interval of roughly 1%.
func progressEvery(steps int) int {
	every := steps / 100
	if every < 1 {
		every = 1
	}
	return every
}
