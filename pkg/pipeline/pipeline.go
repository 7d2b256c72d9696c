// Package pipeline provides the core ranking pipeline for linkrank.
//
// This package implements the complete load → estimate → report pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse the edge-list input into a graph
//  2. Estimate: Run the selected rank estimation method
//  3. Report: Select the top entries and assemble the result document
//
// Reproducible runs (distribution always, stochastic with a pinned seed)
// are cached by a key derived from the input hash and the estimation
// parameters. The cached document holds the full ranking, so a hit can
// serve any top-N truncation.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:  edgeList,
//	    Method: rank.MethodStochastic,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkrank/pkg/errors"
	"github.com/matzehuels/linkrank/pkg/rank"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWalkSteps is the default number of random-walk transitions
	// for the stochastic method.
	DefaultWalkSteps = 1_000_000

	// DefaultIterations is the default number of fixed-point iterations
	// for the distribution method.
	DefaultIterations = 100

	// DefaultTopN is the default number of reported entries.
	DefaultTopN = 20
)

// DefaultMethod is the default estimation method.
const DefaultMethod = rank.MethodStochastic

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one ranking run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input is the edge-list document to rank.
	Input []byte `json:"-"`

	// Estimation options
	Method     string `json:"method,omitempty"`
	WalkSteps  int    `json:"walk_steps,omitempty"` // stochastic transitions
	Iterations int    `json:"iterations,omitempty"` // distribution iterations
	Seed       *int64 `json:"seed,omitempty"`       // pinned RNG seed, nil for unseeded
	TopN       int    `json:"top,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"` // bypass the cache

	// Runtime options (not serialized)
	Logger        *log.Logger       `json:"-"`
	Progress      rank.ProgressFunc `json:"-"`
	ProgressEvery int               `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Method == "" {
		o.Method = DefaultMethod
	}
	if !rank.ValidMethod(o.Method) {
		return errors.New(errors.ErrCodeInvalidMethod, "unknown method %q", o.Method)
	}

	if o.WalkSteps == 0 {
		o.WalkSteps = DefaultWalkSteps
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.TopN == 0 {
		o.TopN = DefaultTopN
	}
	if o.WalkSteps < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "walk steps must not be negative, got %d", o.WalkSteps)
	}
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "iterations must not be negative, got %d", o.Iterations)
	}
	if o.TopN < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "top must not be negative, got %d", o.TopN)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// Steps returns the step budget for the selected method.
func (o *Options) Steps() int {
	if o.Method == rank.MethodDistribution {
		return o.Iterations
	}
	return o.WalkSteps
}

// Cacheable reports whether the run is reproducible and may be served
// from or stored in the cache. Unseeded stochastic runs are not.
func (o *Options) Cacheable() bool {
	return o.Method == rank.MethodDistribution || o.Seed != nil
}
