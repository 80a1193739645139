package spinner

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// isActive reads the running flag under the spinner's lock
func isActive(s *Spinner) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewSpinner(t *testing.T) {
	var buf syncBuffer
	message := "Counting..."

	spinner := New(context.Background(), &buf, message)

	if spinner == nil {
		t.Fatal("New() returned nil")
	}

	if spinner.message != message {
		t.Errorf("Expected message %q, got %q", message, spinner.message)
	}

	if spinner.grace != DefaultGrace {
		t.Errorf("Expected grace %v, got %v", DefaultGrace, spinner.grace)
	}
}

func TestSpinnerStartStop(t *testing.T) {
	var buf syncBuffer
	spinner := NewWithGrace(context.Background(), &buf, "Testing...", 0)

	// initially not active
	if isActive(spinner) {
		t.Error("Spinner should not be active initially")
	}

	spinner.Start()

	if !isActive(spinner) {
		t.Error("Spinner should be active after Start()")
	}

	// allow some time for spinner to run
	time.Sleep(150 * time.Millisecond)

	spinner.Stop()

	if isActive(spinner) {
		t.Error("Spinner should not be active after Stop()")
	}

	output := buf.String()
	hasSpinnerFrame := false
	for _, frame := range frames {
		if strings.Contains(output, frame) {
			hasSpinnerFrame = true
			break
		}
	}

	if !hasSpinnerFrame {
		t.Errorf("Expected spinner frames in output, got %q", output)
	}

	// non-terminal output is cleared with a bare carriage return
	if !strings.HasSuffix(output, "\r") {
		t.Error("Expected output to end with carriage return")
	}
}

func TestSpinnerGracePeriod(t *testing.T) {
	var buf syncBuffer
	spinner := NewWithGrace(context.Background(), &buf, "Counting...", time.Hour)

	spinner.Start()
	time.Sleep(50 * time.Millisecond)
	spinner.Stop()

	if spinner.drawn {
		t.Error("Spinner should not draw before the grace period ends")
	}
	if out := buf.String(); out != "" {
		t.Errorf("Expected no output for a short run, got %q", out)
	}
}

func TestSpinnerDoubleStart(t *testing.T) {
	var buf syncBuffer
	spinner := New(context.Background(), &buf, "Testing...")

	spinner.Start()
	spinner.Start() // should not cause any issues

	if !isActive(spinner) {
		t.Error("Spinner should still be active after second Start()")
	}

	spinner.Stop()
}

func TestSpinnerDoubleStop(t *testing.T) {
	var buf syncBuffer
	spinner := New(context.Background(), &buf, "Testing...")

	spinner.Start()
	spinner.Stop()
	spinner.Stop() // should not cause any issues

	if isActive(spinner) {
		t.Error("Spinner should not be active after second Stop()")
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var buf syncBuffer
	spinner := New(context.Background(), &buf, "Testing...")

	spinner.Stop()

	if isActive(spinner) {
		t.Error("Spinner should not be active after Stop() without Start()")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	var buf syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	spinner := NewWithGrace(ctx, &buf, "Counting...", time.Hour)

	spinner.Start()
	cancel()

	// Stop must not block once the parent context is gone
	done := make(chan struct{})
	go func() {
		spinner.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return after parent context was cancelled")
	}
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	if IsTerminal(&buf) {
		t.Error("bytes.Buffer should not be reported as a terminal")
	}

	f, err := os.CreateTemp(t.TempDir(), "spinner_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("regular file should not be reported as a terminal")
	}
}
