package toolchain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRunner answers executable lookups and command output from canned
// tables and records every environment capture and lookup it is asked for.
type fakeRunner struct {
	executables map[string]string // name -> absolute path
	outputs     map[string]string // command line -> stdout
	envs        map[string]map[string]string
	captured    []string
	lookupEnvs  [][]string // environment passed to each LookPath call
}

func (f *fakeRunner) LookPath(env []string, name string) (string, error) {
	f.lookupEnvs = append(f.lookupEnvs, env)
	if path, ok := f.executables[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("executable %s not found", name)
}

func (f *fakeRunner) Output(_ []string, name string, args ...string) (string, error) {
	key := name
	for _, a := range args {
		key += " " + a
	}
	if out, ok := f.outputs[key]; ok {
		return out, nil
	}
	return "", fmt.Errorf("no canned output for %q", key)
}

func (f *fakeRunner) CaptureEnv(_ []string, command string) (map[string]string, error) {
	f.captured = append(f.captured, command)
	if env, ok := f.envs[command]; ok {
		return env, nil
	}
	return map[string]string{}, nil
}

// fakeNodes is a NodeInfo with fixed answers.
type fakeNodes struct {
	parallelism  int
	subshell     string
	companionGCC string
	validateErr  error
}

func (f *fakeNodes) DefaultParallelism(string) int     { return f.parallelism }
func (f *fakeNodes) EnvironmentSubshell(string) string { return f.subshell }
func (f *fakeNodes) CompanionGCC(string) string        { return f.companionGCC }
func (f *fakeNodes) ValidateCompiler(string, Compiler, string) error {
	return f.validateErr
}

// fakeLogs hands out log directories under a fixed root.
type fakeLogs struct {
	root string
}

func (f *fakeLogs) LogDir(category string) (string, error) {
	return f.root + "/" + category, nil
}

func newTestResolver(t *testing.T, system System, runner *fakeRunner, nodes *fakeNodes) *Resolver {
	t.Helper()
	if runner.executables == nil {
		runner.executables = map[string]string{}
	}
	if nodes.parallelism == 0 {
		nodes.parallelism = 4
	}
	r, err := New(Options{
		System: system,
		Node:   "bs-test-1",
		Runner: runner,
		Nodes:  nodes,
		Logs:   &fakeLogs{root: "/ws/logs"},
		Home:   "/home/jenkins",
	})
	require.NoError(t, err)
	return r
}
