package workspace

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// Status summarizes how a configuration run ended.
type Status struct {
	Result string `json:"result"` // SUCCESS, FAILURE or UNSTABLE
	Reason string `json:"reason,omitempty"`
}

// WriteStatus writes the run status where the calling pipeline picks it up.
// A path ending in .json gets a JSON document; anything else gets the bare
// reason text. Nothing is written for a clean success to a text path.
func (w *Workspace) WriteStatus(path string, status Status) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.Root, path)
	}

	var contents string
	if filepath.Ext(path) == ".json" {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return err
		}
		contents = string(data) + "\n"
	} else {
		if status.Reason == "" {
			return nil
		}
		contents = strings.TrimRight(status.Reason, "\n") + "\n"
	}

	if err := w.Executor.EnsureDir(filepath.Dir(path), false); err != nil {
		return err
	}
	return w.Executor.WriteFile(path, contents)
}
