// Package app contains the core application logic for the nonws CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/chriscorrea/nonws/internal/counter"
	"github.com/chriscorrea/nonws/internal/fetch"
	"github.com/chriscorrea/nonws/internal/spinner"
)

// UsageMode decides what happens when the argument count is not exactly one.
type UsageMode int

const (
	// Legacy skips the scan and reports zero counts (default)
	Legacy UsageMode = iota
	// Strict rejects the invocation with a UsageError
	Strict
)

// String returns the string representation of the usage mode
func (m UsageMode) String() string {
	switch m {
	case Legacy:
		return "legacy"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

// Config holds all configuration options for the nonws application.
type Config struct {
	Args       []string           // positional arguments; exactly one source path is scanned
	Mode       UsageMode          // handling of a wrong argument count
	WordPolicy counter.WordPolicy // whether a final unterminated word counts
	Tokens     bool               // also report a cl100k_base token count
	Progress   io.Writer          // spinner destination; nil disables the spinner
	Debug      bool
}

// Result holds the counts produced by a single invocation.
type Result struct {
	Words  int
	Chars  int
	Tokens int // only set when Config.Tokens is true
}

// Run executes the main nonws application logic with the given configuration.
//
// A wrong argument count never touches the filesystem: in Legacy mode it yields
// a zero Result, in Strict mode a *UsageError. Open and read failures are
// reported as *IOError. A cancelled ctx stops the scan and its error is
// returned as is, so callers can test it with errors.Is.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if len(cfg.Args) != 1 {
		if cfg.Mode == Strict {
			return Result{}, &UsageError{Got: len(cfg.Args)}
		}
		slog.Debug("Skipping scan", "args", len(cfg.Args), "mode", cfg.Mode.String())
		return Result{}, nil
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	source := cfg.Args[0]

	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return Result{}, &IOError{Path: source, Err: err}
	}
	defer reader.Close()

	return countSource(ctx, reader, source, cfg)
}

// countSource runs the scan over an opened source; when a token count was
// requested the token counter sees the same bytes through a tee.
func countSource(ctx context.Context, reader io.Reader, source string, cfg Config) (Result, error) {
	var tokens *counter.TokenCounter
	if cfg.Tokens {
		var err error
		tokens, err = counter.NewTokenCounter(counter.DefaultEncoding)
		if err != nil {
			return Result{}, fmt.Errorf("failed to create token counter: %w", err)
		}
		reader = io.TeeReader(reader, tokens)
	}

	// display spinner when a progress writer is configured
	if cfg.Progress != nil {
		sp := spinner.New(ctx, cfg.Progress, fmt.Sprintf("Counting %s...", displayName(source)))
		sp.Start()
		defer sp.Stop()
	}

	totals, err := counter.Scan(ctx, reader, cfg.WordPolicy)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			slog.Debug("Scan interrupted", "source", source, "words", totals.Words, "chars", totals.Chars)
			return Result{}, fmt.Errorf("counting interrupted: %w", ctxErr)
		}
		return Result{}, &IOError{Path: source, Err: err}
	}

	result := Result{Words: totals.Words, Chars: totals.Chars}
	if tokens != nil {
		result.Tokens = tokens.Count()
	}

	slog.Debug("Counted source", "source", source, "words", result.Words, "chars", result.Chars, "tokens", result.Tokens)
	return result, nil
}

func displayName(source string) string {
	if source == fetch.Stdin {
		return "stdin"
	}
	return source
}
