// Package counter provides the text counting functionality for the nonws CLI tool.
//
// The core of the package is Scan, a single linear pass over a character stream
// that tracks non-whitespace characters and whitespace-delimited words.
// TokenCounter adds an optional token count using tiktoken.
//
// Usage Example:
//
//	totals, err := counter.Scan(ctx, file, counter.Terminated)
//	// totals.Words, totals.Chars
//
// Words are maximal runs of non-whitespace characters. Whitespace is exactly
// space, tab, newline, carriage return, form feed and vertical tab.
package counter

import (
	"context"
	"io"
)

// contextReader makes a blocking reader give up once ctx is done.
// An abandoned Read keeps its goroutine until the underlying reader returns.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

type readResult struct {
	n   int
	err error
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	// read into a private buffer so an abandoned Read never touches p
	buf := make([]byte, len(p))
	done := make(chan readResult, 1)
	go func() {
		n, err := cr.r.Read(buf)
		done <- readResult{n: n, err: err}
	}()

	select {
	case <-cr.ctx.Done():
		return 0, cr.ctx.Err()
	case res := <-done:
		copy(p, buf[:res.n])
		return res.n, res.err
	}
}
