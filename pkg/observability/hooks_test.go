package observability

import (
	"context"
	"testing"
	"time"
)

type recordingRankHooks struct {
	loadStarts    int
	loadCompletes int
	estStarts     int
	estCompletes  int
}

func (r *recordingRankHooks) OnLoadStart(context.Context) { r.loadStarts++ }
func (r *recordingRankHooks) OnLoadComplete(context.Context, int, int, time.Duration, error) {
	r.loadCompletes++
}
func (r *recordingRankHooks) OnEstimateStart(context.Context, string, int) { r.estStarts++ }
func (r *recordingRankHooks) OnEstimateComplete(context.Context, string, int, time.Duration, error) {
	r.estCompletes++
}

type recordingCacheHooks struct {
	hits, misses, sets int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string)      { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(context.Context, string)     { r.misses++ }
func (r *recordingCacheHooks) OnCacheSet(context.Context, string, int) { r.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Rank().OnLoadStart(ctx)
	Rank().OnLoadComplete(ctx, 10, 20, time.Second, nil)
	Rank().OnEstimateStart(ctx, "stochastic", 100)
	Rank().OnEstimateComplete(ctx, "stochastic", 100, time.Second, nil)
	Cache().OnCacheHit(ctx, "rank")
	Cache().OnCacheMiss(ctx, "rank")
	Cache().OnCacheSet(ctx, "rank", 128)
	Server().OnRequest(ctx, "POST", "/api/rank")
	Server().OnResponse(ctx, "POST", "/api/rank", 200, time.Millisecond)
}

func TestSetRankHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingRankHooks{}
	SetRankHooks(rec)

	ctx := context.Background()
	Rank().OnLoadStart(ctx)
	Rank().OnLoadComplete(ctx, 1, 2, time.Millisecond, nil)
	Rank().OnEstimateStart(ctx, "distribution", 50)
	Rank().OnEstimateComplete(ctx, "distribution", 50, time.Millisecond, nil)

	if rec.loadStarts != 1 || rec.loadCompletes != 1 || rec.estStarts != 1 || rec.estCompletes != 1 {
		t.Errorf("hooks not invoked: %+v", rec)
	}
}

func TestSetCacheHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "rank")
	Cache().OnCacheMiss(ctx, "rank")
	Cache().OnCacheSet(ctx, "rank", 64)

	if rec.hits != 1 || rec.misses != 1 || rec.sets != 1 {
		t.Errorf("hooks not invoked: %+v", rec)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingRankHooks{}
	SetRankHooks(rec)
	SetRankHooks(nil)

	Rank().OnLoadStart(context.Background())
	if rec.loadStarts != 1 {
		t.Error("nil registration should keep previous hooks")
	}
}
