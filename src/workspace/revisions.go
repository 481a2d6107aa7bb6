package workspace

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"golang.org/x/sync/semaphore"
)

// ProjectRevision describes one checked-out project under the workspace.
type ProjectRevision struct {
	Project   string
	HeadHash  string
	HeadTitle string
	Err       error // set when the checkout could not be inspected
}

const maxRevisionScans = 4

// Revisions inspects the named project checkouts under the workspace root
// and reports the revision each one is at. Projects are scanned
// concurrently but results keep the input order.
func (w *Workspace) Revisions(ctx context.Context, projects []string) ([]ProjectRevision, error) {
	sem := semaphore.NewWeighted(maxRevisionScans)
	revisions := make([]ProjectRevision, len(projects))
	var wg sync.WaitGroup

	for i, project := range projects {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Started scans still write into revisions; let them finish
			// before the slice goes out of reach.
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			revisions[i] = w.projectRevision(project)
		}()
	}
	wg.Wait()
	return revisions, nil
}

func (w *Workspace) projectRevision(project string) ProjectRevision {
	rev := ProjectRevision{Project: project}

	repo, err := git.PlainOpen(filepath.Join(w.Root, project))
	if err != nil {
		rev.Err = fmt.Errorf("opening checkout of %s: %w", project, err)
		return rev
	}
	head, err := repo.Head()
	if err != nil {
		rev.Err = fmt.Errorf("reading HEAD of %s: %w", project, err)
		return rev
	}
	rev.HeadHash = head.Hash().String()

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		rev.Err = fmt.Errorf("reading HEAD commit of %s: %w", project, err)
		return rev
	}
	rev.HeadTitle, _, _ = strings.Cut(commit.Message, "\n")
	return rev
}

// PrintRevisions writes the revision report to the executor's console.
func (w *Workspace) PrintRevisions(revisions []ProjectRevision) {
	console := w.Executor.Console()
	fmt.Fprintln(console, "-----------------------------------------------------------")
	fmt.Fprintln(console, "Building using versions:")
	for _, rev := range revisions {
		if rev.Err != nil {
			fmt.Fprintf(console, "%-16s (unavailable: %v)\n", rev.Project+":", rev.Err)
			continue
		}
		fmt.Fprintf(console, "%-16s %s\n", rev.Project+":", rev.HeadHash)
		if rev.HeadTitle != "" {
			fmt.Fprintf(console, "%-16s %s\n", "", rev.HeadTitle)
		}
	}
	fmt.Fprintln(console, "-----------------------------------------------------------")
}
