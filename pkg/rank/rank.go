package rank

import (
	"github.com/matzehuels/linkrank/pkg/errors"
	"github.com/matzehuels/linkrank/pkg/webgraph"
)

// Estimation methods accepted by the CLI, API, and pipeline.
const (
	MethodStochastic   = "stochastic"
	MethodDistribution = "distribution"
)

// ValidMethod reports whether m names a known estimation method.
func ValidMethod(m string) bool {
	return m == MethodStochastic || m == MethodDistribution
}

// Scores maps every node in a graph to a non-negative score.
//
// For the stochastic estimator scores are visit counts (integral values);
// for the distribution estimator they are probabilities. A Scores value is
// produced once per run and not mutated after return.
type Scores map[string]float64

// Sum returns the total of all scores.
// For stochastic results this is steps+1; for distribution results it is
// the remaining probability mass (at most 1.0).
func (s Scores) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// ProgressFunc receives periodic progress updates during an estimator run.
// done is the number of completed steps, total the configured step count.
// It is an observability side channel only and must not affect outcomes.
type ProgressFunc func(done, total int)

// Option configures an estimator run.
type Option func(*options)

type options struct {
	progress ProgressFunc
	every    int
}

// WithProgress installs a progress callback invoked every `every` steps and
// once at completion. Non-positive values of every disable the callback.
func WithProgress(fn ProgressFunc, every int) Option {
	return func(o *options) {
		o.progress = fn
		o.every = every
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.every <= 0 {
		o.progress = nil
	}
	return o
}

// validate checks the shared preconditions of both estimators.
func validate(g *webgraph.Graph, steps int) error {
	if g == nil || g.NodeCount() == 0 {
		return errors.New(errors.ErrCodeEmptyGraph, "cannot rank an empty graph")
	}
	if steps < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "step count must not be negative, got %d", steps)
	}
	return nil
}
