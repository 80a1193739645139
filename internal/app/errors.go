package app

import "fmt"

// UsageError reports an invocation without exactly one source path
// while running in Strict mode.
type UsageError struct {
	Got int // number of positional arguments received
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("expected exactly one file path, got %d arguments", e.Got)
}

// IOError reports a source that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot read %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
