// Package execute isolates filesystem side effects behind a small port.
//
// Everything the resolver does to the world outside the process goes through
// an Executor so a DryRunExecutor can be dropped in for local testing, and
// unit tests can use it as a recording double. Reading is non-destructive
// and is performed for real by every implementation.
package execute

import (
	"bufio"
	"io"
	"iter"
	"os"
)

// Executor performs filesystem operations and owns the console sink.
type Executor interface {
	// Console returns the sink for human-readable progress output.
	Console() io.Writer

	// EnsureDir creates a directory (with parents) if it does not exist.
	// With clearFirst, an existing directory is removed first, contents
	// and all.
	EnsureDir(path string, clearFirst bool) error

	// ReadLines iterates over the lines of a text file. Each call starts
	// a fresh read; the error position is non-nil only on read failure.
	ReadLines(path string) iter.Seq2[string, error]

	// WriteFile replaces the file at path with the given contents.
	WriteFile(path string, contents string) error
}

// RealExecutor performs all operations for real.
type RealExecutor struct {
	Out io.Writer // defaults to os.Stdout
}

func NewRealExecutor() *RealExecutor {
	return &RealExecutor{Out: os.Stdout}
}

func (e *RealExecutor) Console() io.Writer {
	if e.Out != nil {
		return e.Out
	}
	return os.Stdout
}

func (e *RealExecutor) EnsureDir(path string, clearFirst bool) error {
	if clearFirst {
		if _, err := os.Stat(path); err == nil {
			if err := os.RemoveAll(path); err != nil {
				return err
			}
		}
	}
	return os.MkdirAll(path, 0o755)
}

func (e *RealExecutor) ReadLines(path string) iter.Seq2[string, error] {
	return readLines(path)
}

func (e *RealExecutor) WriteFile(path string, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}

// readLines is shared by all implementations; reading never mutates state.
func readLines(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield("", err)
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text(), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", err)
		}
	}
}
