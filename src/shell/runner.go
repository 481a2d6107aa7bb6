// Package shell runs external commands for the toolchain resolver.
//
// The resolver only ever needs three things from the outside world: locate
// an executable on the search path, capture one command's stdout, and
// capture the environment left behind by sourcing a vendor setup script.
// Runner is that seam; tests substitute a fake.
//
// Every operation takes the job's environment model as KEY=VALUE entries so
// that mutations the resolver has already made (a prepended PATH entry, a
// sourced vendor script) are visible to its own subsequent lookups, the way
// they would be had the process environment been mutated.
package shell

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes external commands under a given environment.
type Runner interface {
	// LookPath resolves an executable name to an absolute path using the
	// PATH of the given environment.
	LookPath(env []string, name string) (string, error)

	// Output runs a command and returns its standard output.
	Output(env []string, name string, args ...string) (string, error)

	// CaptureEnv runs a shell command that dumps its environment as
	// KEY=VALUE lines (typically "<setup script> && cmake -E environment")
	// and returns the parsed snapshot.
	CaptureEnv(env []string, command string) (map[string]string, error)
}

// LocalRunner runs commands on the local machine. The job's environment
// entries are layered over the process environment, job entries winning on
// collisions.
type LocalRunner struct{}

func NewLocalRunner() *LocalRunner { return &LocalRunner{} }

func (r *LocalRunner) LookPath(env []string, name string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, '\\') {
		if isExecutable(name) {
			return name, nil
		}
		return "", fmt.Errorf("locating %s: not an executable", name)
	}
	for _, dir := range filepath.SplitList(envValue(MergedEnv(env), "PATH")) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("locating %s: not found in PATH", name)
}

func (r *LocalRunner) Output(env []string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Env = MergedEnv(env)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("running %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *LocalRunner) CaptureEnv(env []string, command string) (map[string]string, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Env = MergedEnv(env)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("capturing environment from %q: %w", command, err)
	}
	return ParseEnvDump(string(out)), nil
}

// MergedEnv layers KEY=VALUE entries over the process environment; entries
// in env win on key collisions.
func MergedEnv(env []string) []string {
	merged := os.Environ()
	index := make(map[string]int, len(merged))
	for i, entry := range merged {
		key, _, _ := strings.Cut(entry, "=")
		index[key] = i
	}
	for _, entry := range env {
		key, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if i, seen := index[key]; seen {
			merged[i] = entry
		} else {
			index[key] = len(merged)
			merged = append(merged, entry)
		}
	}
	return merged
}

func envValue(env []string, key string) string {
	for _, entry := range env {
		if v, ok := strings.CutPrefix(entry, key+"="); ok {
			return v
		}
	}
	return ""
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode()&0o111 != 0
}

// ParseEnvDump parses KEY=VALUE lines as printed by "cmake -E environment".
// Lines without a separator are ignored.
func ParseEnvDump(dump string) map[string]string {
	env := make(map[string]string)
	for line := range strings.Lines(dump) {
		line = strings.TrimRight(line, "\r\n")
		if key, value, ok := strings.Cut(line, "="); ok && key != "" {
			env[key] = value
		}
	}
	return env
}
