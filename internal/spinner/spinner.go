// Package spinner provides a simple terminal spinner shown while a source is being counted.
//
// Most files are counted faster than a person can notice, so nothing is drawn
// until a grace period has passed; short scans leave the terminal untouched.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	// DefaultGrace is how long a scan may run before the first frame is drawn.
	DefaultGrace = 250 * time.Millisecond
	frameDelay   = 100 * time.Millisecond
)

var frames = []string{"◜", "◠", "◝", "◞", "◡", "◟"}

// Spinner represents a spinning progress indicator.
type Spinner struct {
	writer  io.Writer
	grace   time.Duration
	message string
	active  bool
	drawn   bool // at least one frame reached the writer
	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a spinner that writes to writer after DefaultGrace.
// ctx allows for cancellation of the spinner goroutine.
func New(ctx context.Context, writer io.Writer, message string) *Spinner {
	return NewWithGrace(ctx, writer, message, DefaultGrace)
}

// NewWithGrace is New with an explicit grace period; zero draws immediately.
func NewWithGrace(ctx context.Context, writer io.Writer, message string, grace time.Duration) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		writer:  writer,
		grace:   grace,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return // already running
	}

	s.active = true

	s.wg.Add(1)
	go s.run()
}

// Stop stops the spinner animation and clears the line if anything was drawn.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return // not running
	}

	s.active = false
	s.cancel()
	s.mu.Unlock()

	// wait for spinner goroutine to finish
	s.wg.Wait()

	s.mu.RLock()
	drawn := s.drawn
	s.mu.RUnlock()
	if !drawn {
		return
	}

	// only use terminal control sequences when writing to a terminal (not redirected)
	if IsTerminal(s.writer) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// run waits out the grace period, then draws frames until cancelled.
func (s *Spinner) run() {
	defer s.wg.Done()

	if s.grace > 0 {
		timer := time.NewTimer(s.grace)
		defer timer.Stop()

		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
		}
	}

	frameIndex := 0
	ticker := time.NewTicker(frameDelay)
	defer ticker.Stop()

	for {
		s.draw(frameIndex)
		frameIndex++

		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Spinner) draw(frameIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintf(s.writer, "\r%s %s", frames[frameIndex%len(frames)], s.message)
	s.drawn = true
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
