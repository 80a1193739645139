// Package fetch opens the character stream that nonws scans;
// the source is a local file path, or "-" for standard input.
//
// Errors leave the path out; callers attach it once (see app.IOError).
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// Stdin is the source name that selects standard input.
const Stdin = "-"

// ErrNotExist is returned for a path that does not exist.
var ErrNotExist = errors.New("file does not exist")

// ErrIsDir is returned for a path that names a directory.
var ErrIsDir = errors.New("is a directory")

// GetContent opens the given source and returns an io.ReadCloser.
// It supports two types of sources:
//   - "-" reads from standard input (Close is a no-op)
//   - everything else is treated as a local file path
//
// Nothing is opened once ctx is done.
func GetContent(ctx context.Context, source string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if source == Stdin {
		slog.Debug("Reading from standard input")
		return io.NopCloser(os.Stdin), nil
	}
	return fetchFile(source)
}

// fetchFile opens a local file for reading with better error messages
func fetchFile(path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file: %w", withoutPath(err))
	}

	if fileInfo.IsDir() {
		return nil, ErrIsDir
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", withoutPath(err))
	}

	slog.Debug("Opened file", "path", path, "size", fileInfo.Size())
	return file, nil
}

// withoutPath strips the *fs.PathError wrapper, whose message repeats the path.
func withoutPath(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
