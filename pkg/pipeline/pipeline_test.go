package pipeline

import (
	"context"
	"testing"

	"github.com/matzehuels/linkrank/pkg/cache"
	"github.com/matzehuels/linkrank/pkg/errors"
	"github.com/matzehuels/linkrank/pkg/rank"
)

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}

	if opts.Method != DefaultMethod {
		t.Errorf("Method should be %s, got %s", DefaultMethod, opts.Method)
	}
	if opts.WalkSteps != DefaultWalkSteps {
		t.Errorf("WalkSteps should be %d, got %d", DefaultWalkSteps, opts.WalkSteps)
	}
	if opts.Iterations != DefaultIterations {
		t.Errorf("Iterations should be %d, got %d", DefaultIterations, opts.Iterations)
	}
	if opts.TopN != DefaultTopN {
		t.Errorf("TopN should be %d, got %d", DefaultTopN, opts.TopN)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"UnknownMethod", Options{Method: "montecarlo"}, errors.ErrCodeInvalidMethod},
		{"NegativeWalkSteps", Options{WalkSteps: -1}, errors.ErrCodeInvalidParameter},
		{"NegativeIterations", Options{Iterations: -5}, errors.ErrCodeInvalidParameter},
		{"NegativeTopN", Options{TopN: -2}, errors.ErrCodeInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Method: rank.MethodDistribution, Iterations: 7}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	originalSteps := opts.Steps()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Steps() != originalSteps {
		t.Error("Steps changed on second call")
	}
}

func TestOptionsSteps(t *testing.T) {
	opts := Options{Method: rank.MethodStochastic, WalkSteps: 500, Iterations: 10}
	if opts.Steps() != 500 {
		t.Errorf("stochastic Steps = %d, want 500", opts.Steps())
	}

	opts.Method = rank.MethodDistribution
	if opts.Steps() != 10 {
		t.Errorf("distribution Steps = %d, want 10", opts.Steps())
	}
}

func TestOptionsCacheable(t *testing.T) {
	seed := int64(42)

	opts := Options{Method: rank.MethodStochastic}
	if opts.Cacheable() {
		t.Error("unseeded stochastic run should not be cacheable")
	}

	opts.Seed = &seed
	if !opts.Cacheable() {
		t.Error("seeded stochastic run should be cacheable")
	}

	opts = Options{Method: rank.MethodDistribution}
	if !opts.Cacheable() {
		t.Error("distribution run should be cacheable")
	}
}

func TestExecuteDistribution(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{
		Input:      []byte("b a\nc a\na a\n"),
		Method:     rank.MethodDistribution,
		Iterations: 10,
		TopN:       2,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if res.Method != rank.MethodDistribution {
		t.Errorf("Method = %s", res.Method)
	}
	if res.Steps != 10 {
		t.Errorf("Steps = %d, want 10", res.Steps)
	}
	if res.Nodes != 3 || res.Edges != 3 {
		t.Errorf("Stats = %d nodes, %d edges, want 3/3", res.Nodes, res.Edges)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("Entries = %d, want 2 (truncated)", len(res.Entries))
	}
	// a absorbs all mass through its self-loop and the two inbound links.
	if res.Entries[0].Node != "a" {
		t.Errorf("top node = %s, want a", res.Entries[0].Node)
	}
	if res.Cached {
		t.Error("first run should not be cached")
	}
}

func TestExecuteStochasticSeeded(t *testing.T) {
	seed := int64(7)
	r := NewRunner(cache.NewNullCache(), nil, nil)
	defer r.Close()

	opts := Options{
		Input:     []byte("a b\nb a\n"),
		Method:    rank.MethodStochastic,
		WalkSteps: 100,
		Seed:      &seed,
		TopN:      10,
	}

	res1, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	res2, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	// Same seed, same ranking.
	if len(res1.Entries) != len(res2.Entries) {
		t.Fatal("entry counts differ")
	}
	for i := range res1.Entries {
		if res1.Entries[i] != res2.Entries[i] {
			t.Errorf("entry %d differs: %v vs %v", i, res1.Entries[i], res2.Entries[i])
		}
	}
	if res1.Seed == nil || *res1.Seed != seed {
		t.Error("result should carry the pinned seed")
	}
}

func TestExecuteCacheRoundTrip(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{
		Input:      []byte("a b\nb c\nc a\n"),
		Method:     rank.MethodDistribution,
		Iterations: 5,
		TopN:       3,
	}

	res1, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res1.Cached {
		t.Error("first run should be a cache miss")
	}

	res2, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res2.Cached {
		t.Error("second run should be a cache hit")
	}
	for i := range res1.Entries {
		if res1.Entries[i].Node != res2.Entries[i].Node {
			t.Errorf("entry %d differs: %v vs %v", i, res1.Entries[i], res2.Entries[i])
		}
	}

	// A full cache hit can still serve a smaller top-N.
	opts.TopN = 1
	res3, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res3.Cached {
		t.Error("truncated run should still hit the cache")
	}
	if len(res3.Entries) != 1 {
		t.Errorf("Entries = %d, want 1", len(res3.Entries))
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	res4, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res4.Cached {
		t.Error("refresh run should bypass the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	// Malformed input aborts the load stage.
	_, err := r.Execute(context.Background(), Options{Input: []byte("a b c\n")})
	if errors.GetCode(err) != errors.ErrCodeMalformedInput {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeMalformedInput)
	}

	// Empty input has no nodes to rank.
	_, err = r.Execute(context.Background(), Options{Input: nil})
	if errors.GetCode(err) != errors.ErrCodeEmptyGraph {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeEmptyGraph)
	}
}

func TestExecuteProgress(t *testing.T) {
	var calls int
	var last int
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{
		Input:         []byte("a b\nb a\n"),
		Method:        rank.MethodDistribution,
		Iterations:    10,
		Progress:      func(done, total int) { calls++; last = done },
		ProgressEvery: 5,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if calls == 0 {
		t.Fatal("progress callback should be invoked")
	}
	if last != 10 {
		t.Errorf("final progress = %d, want 10", last)
	}
}
