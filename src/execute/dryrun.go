package execute

import (
	"fmt"
	"io"
	"iter"
	"os"
)

// Action records one side effect a DryRunExecutor was asked to perform.
type Action struct {
	Op         string // "ensure-dir" or "write-file"
	Path       string
	ClearFirst bool
	Contents   string
}

// DryRunExecutor performs no destructive action. Directory and file writes
// are recorded and echoed to the console so a human can confirm what a real
// run would have done. Reads are performed for real.
type DryRunExecutor struct {
	Out     io.Writer // defaults to os.Stdout
	Actions []Action
}

func NewDryRunExecutor() *DryRunExecutor {
	return &DryRunExecutor{Out: os.Stdout}
}

func (e *DryRunExecutor) Console() io.Writer {
	if e.Out != nil {
		return e.Out
	}
	return os.Stdout
}

func (e *DryRunExecutor) EnsureDir(path string, clearFirst bool) error {
	e.Actions = append(e.Actions, Action{Op: "ensure-dir", Path: path, ClearFirst: clearFirst})
	if clearFirst {
		fmt.Fprintf(e.Console(), "ensure empty dir: %s\n", path)
	} else {
		fmt.Fprintf(e.Console(), "ensure dir: %s\n", path)
	}
	return nil
}

func (e *DryRunExecutor) ReadLines(path string) iter.Seq2[string, error] {
	return readLines(path)
}

// WriteFile echoes the intended path and contents, delimited so the content
// boundaries are visible.
func (e *DryRunExecutor) WriteFile(path string, contents string) error {
	e.Actions = append(e.Actions, Action{Op: "write-file", Path: path, Contents: contents})
	fmt.Fprintf(e.Console(), "write: %s <<<\n%s<<<\n", path, contents)
	return nil
}
