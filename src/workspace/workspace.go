// Package workspace manages the job's on-disk layout: per-category log
// directories, the end-of-run status file, and a report of the project
// checkouts the build will use.
package workspace

import (
	"path/filepath"

	"github.com/sofmeright/toolstage/src/execute"
)

// Workspace is the root directory a build job runs in.
type Workspace struct {
	Root     string
	Executor execute.Executor
}

// New binds a workspace root to an executor.
func New(root string, executor execute.Executor) *Workspace {
	return &Workspace{Root: root, Executor: executor}
}

// LogDir returns the log directory for a category, creating it first.
// A fresh category directory starts empty: stale reports from a previous
// run on the same node must not survive into this job's artifacts.
func (w *Workspace) LogDir(category string) (string, error) {
	dir := filepath.Join(w.Root, "logs", category)
	if err := w.Executor.EnsureDir(dir, true); err != nil {
		return "", err
	}
	return dir, nil
}
