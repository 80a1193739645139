package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/chriscorrea/nonws/internal/app"
	"github.com/chriscorrea/nonws/internal/counter"
	"github.com/chriscorrea/nonws/internal/spinner"

	"github.com/spf13/cobra"
)

// exit statuses
const (
	exitOK          = 0
	exitIO          = 1
	exitUsage       = 2
	exitInterrupted = 130 // 128 + SIGINT, as shells report it
)

// flagError marks a flag parsing failure so it exits like a usage error
type flagError struct {
	err error
}

func (e *flagError) Error() string { return e.err.Error() }

func (e *flagError) Unwrap() error { return e.err }

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string, stderr io.Writer) (app.Config, error) {
	strict, _ := cmd.Flags().GetBool("strict")
	countTrailing, _ := cmd.Flags().GetBool("count-trailing")
	tokens, _ := cmd.Flags().GetBool("tokens")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	mode := app.Legacy
	if strict {
		mode = app.Strict
	}

	policy := counter.Terminated
	if countTrailing {
		policy = counter.Trailing
	}

	// only animate on an interactive stderr
	var progress io.Writer
	if !quiet && spinner.IsTerminal(stderr) {
		progress = stderr
	}

	return app.Config{
		Args:       args,
		Mode:       mode,
		WordPolicy: policy,
		Tokens:     tokens,
		Progress:   progress,
		Debug:      debug,
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(w io.Writer, debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// newRootCmd builds the nonws command; tests get a fresh flag set per call
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nonws <file>",
		Short: "Count non-whitespace characters and words in a file",
		Long: `nonws counts the non-whitespace characters and the whitespace-delimited words in a single text file.

Whitespace is space, tab, newline, carriage return, form feed and vertical tab.
A word is only counted once whitespace follows it, unless --count-trailing is set.
Use "-" to read standard input.

Examples:
  nonws notes.txt
  nonws --count-trailing --tokens notes.txt
  cat notes.txt | nonws -`,
		Args:          cobra.ArbitraryArgs, // the argument count is validated by app.Run
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := buildConfig(cmd, args, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}

			// configure logging pending debug flag
			setupLogger(cmd.ErrOrStderr(), config.Debug)

			// create context with signal handling for graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			result, err := app.Run(ctx, config)
			if err != nil {
				return err
			}

			return app.WriteResult(cmd.OutOrStdout(), result, config.Tokens)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &flagError{err: err}
	})

	cmd.Flags().Bool("strict", false, "Treat anything but exactly one file argument as a usage error")
	cmd.Flags().Bool("count-trailing", false, "Count a final word even when no whitespace follows it")
	cmd.Flags().Bool("tokens", false, "Also report the cl100k_base token count")

	// other flags
	cmd.Flags().BoolP("quiet", "q", false, "Suppress the progress spinner")
	cmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = cmd.Flags().MarkHidden("debug")

	return cmd
}

// isUsageError reports whether err comes from how the command was invoked
func isUsageError(err error) bool {
	var usageErr *app.UsageError
	var flagErr *flagError
	return errors.As(err, &usageErr) || errors.As(err, &flagErr)
}

// exitCode maps an error returned by the root command to a process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case isUsageError(err):
		return exitUsage
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return exitIO
	}
}

// execute runs the command with the given arguments and returns the exit status
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if isUsageError(err) {
			fmt.Fprint(stderr, cmd.UsageString())
		}
	}
	return exitCode(err)
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
