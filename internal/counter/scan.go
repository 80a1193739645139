package counter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// WordPolicy decides whether a word still open at end of stream is counted.
type WordPolicy int

const (
	// Terminated counts a word only once whitespace follows it, so a final
	// word with no trailing whitespace is left out of the word total.
	Terminated WordPolicy = iota
	// Trailing also counts a final word that runs up to end of stream.
	Trailing
)

// String returns the string representation of the word policy.
func (p WordPolicy) String() string {
	switch p {
	case Terminated:
		return "terminated"
	case Trailing:
		return "trailing"
	default:
		return "unknown"
	}
}

// Totals holds the results of a scan.
type Totals struct {
	Words int // completed runs of non-whitespace characters
	Chars int // non-whitespace characters
}

// IsWhitespace reports whether r is space, tab, newline, carriage return,
// form feed or vertical tab. No other character is whitespace.
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// scanBufferSize is the read size handed to the underlying reader.
const scanBufferSize = 64 * 1024

// Scan reads r to end of stream one character at a time and counts
// non-whitespace characters and words. Invalid UTF-8 bytes count as one
// character each.
//
// Scan stops with ctx.Err() once ctx is done, even while blocked in a read.
// On any error the totals gathered so far are returned along with the error.
func Scan(ctx context.Context, r io.Reader, policy WordPolicy) (Totals, error) {
	var totals Totals
	inWord := false

	br := bufio.NewReaderSize(&contextReader{ctx: ctx, r: r}, scanBufferSize)

	for {
		c, _, err := br.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return totals, ctxErr
			}
			return totals, fmt.Errorf("failed to read character: %w", err)
		}

		if !IsWhitespace(c) {
			totals.Chars++
			inWord = true
			continue
		}

		if inWord {
			totals.Words++
		}
		inWord = false
	}

	if inWord && policy == Trailing {
		totals.Words++
	}

	slog.Debug("Scan complete", "policy", policy.String(), "wordCount", totals.Words, "charCount", totals.Chars, "openWordAtEOF", inWord)
	return totals, nil
}
