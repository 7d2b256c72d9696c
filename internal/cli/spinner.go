package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Spinner provides a simple progress indicator with context cancellation support.
type Spinner struct {
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	frames  []string
	mu      sync.Mutex
}

// newSpinner creates a new spinner with the given message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that will stop when the context is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := s.frames[i%len(s.frames)]
				s.mu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
				i++
			}
		}
	}()
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	s.cancel()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled returns true if the spinner was stopped due to context cancellation.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// =============================================================================
// Walk Progress Bar
// =============================================================================

// walkBar renders an in-place progress bar for long estimator runs:
//
//	Ranking (42% 01:17) [#########....................]
//
// It is driven by the estimator's progress callback and redraws at most
// once per update. Call finish to clear the line.
type walkBar struct {
	w     io.Writer
	title string
	width int
	start time.Time
}

// newWalkBar creates a progress bar writing to w with the given total line width.
func newWalkBar(w io.Writer, title string, width int) *walkBar {
	if width < len(title)+16 {
		width = len(title) + 16
	}
	return &walkBar{w: w, title: title, width: width, start: time.Now()}
}

// update redraws the bar for done out of total steps.
func (b *walkBar) update(done, total int) {
	if total <= 0 {
		return
	}

	sec := int(time.Since(b.start).Seconds())
	percent := 100 * done / total
	head := fmt.Sprintf("%s (%d%% %02d:%02d) ", b.title, percent, sec/60, sec%60)

	barWidth := b.width - len(head) - 2
	if barWidth < 1 {
		barWidth = 1
	}
	full := barWidth * done / total
	if full > barWidth {
		full = barWidth
	}

	fmt.Fprintf(b.w, "\r%s[%s%s]", StyleDim.Render(head),
		strings.Repeat("#", full), strings.Repeat(".", barWidth-full))
}

// finish clears the progress bar line.
func (b *walkBar) finish() {
	fmt.Fprintf(b.w, "\r%s\r", strings.Repeat(" ", b.width))
}
