package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinner("Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	_ = s.Cancelled() // Verify method is callable; value not asserted as Stop() doesn't set cancelled
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()

	cancel()

	// Give goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing idempotent stop...")
	s.Start()

	// Stop multiple times should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinner("Testing success...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Done!")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")
}

func TestWalkBar(t *testing.T) {
	var buf bytes.Buffer
	bar := newWalkBar(&buf, "Ranking", 60)

	bar.update(50, 100)
	out := buf.String()

	if !strings.Contains(out, "Ranking (50%") {
		t.Errorf("bar should show title and percent: %q", out)
	}
	if !strings.Contains(out, "#") || !strings.Contains(out, ".") {
		t.Errorf("bar should show filled and empty segments: %q", out)
	}
	if !strings.HasPrefix(out, "\r") {
		t.Error("bar should redraw in place with carriage return")
	}
}

func TestWalkBarComplete(t *testing.T) {
	var buf bytes.Buffer
	bar := newWalkBar(&buf, "Ranking", 40)

	bar.update(100, 100)
	if strings.Contains(buf.String(), ".") {
		t.Errorf("complete bar should have no empty segments: %q", buf.String())
	}

	buf.Reset()
	bar.finish()
	if !strings.HasSuffix(buf.String(), "\r") {
		t.Error("finish should clear the line and return the cursor")
	}
}

func TestWalkBarZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := newWalkBar(&buf, "Ranking", 40)

	// Must not divide by zero.
	bar.update(0, 0)
	if buf.Len() != 0 {
		t.Errorf("zero total should produce no output: %q", buf.String())
	}
}

func TestWalkBarNarrowWidth(t *testing.T) {
	var buf bytes.Buffer
	// Width smaller than the title is widened instead of panicking.
	bar := newWalkBar(&buf, "A very long progress title", 10)
	bar.update(1, 2)

	if buf.Len() == 0 {
		t.Error("narrow bar should still render")
	}
}
