package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCMakeResolver(t *testing.T, system System, runner *fakeRunner, baseDir string) *Resolver {
	t.Helper()
	r, err := New(Options{
		System:       system,
		Node:         "bs-test-1",
		Runner:       runner,
		Nodes:        &fakeNodes{parallelism: 4},
		Logs:         &fakeLogs{root: "/ws/logs"},
		Home:         "/home/jenkins",
		CMakeBaseDir: baseDir,
	})
	require.NoError(t, err)
	return r
}

// installCMake creates a fake installed distribution under baseDir.
func installCMake(t *testing.T, baseDir, dirName, binary string) {
	t.Helper()
	binDir := filepath.Join(baseDir, dirName, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, binary), []byte("#!/bin/sh\n"), 0o755))
}

func versionOutput(v string) string {
	return "cmake version " + v + "\n\nCMake suite maintained and supported by Kitware (kitware.com/cmake).\n"
}

func TestMinimumCMakeEmptyRequestIsNoop(t *testing.T) {
	r := newCMakeResolver(t, Linux, &fakeRunner{}, t.TempDir())

	require.NoError(t, r.RequestMinimumCMake(""))

	assert.Empty(t, r.CMakeVersion)
	assert.Equal(t, "cmake", r.CMakeCommand)
}

func TestMinimumCMakeActiveSatisfies(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"cmake --version": versionOutput("3.12.4"),
	}}
	r := newCMakeResolver(t, Linux, runner, t.TempDir())

	require.NoError(t, r.RequestMinimumCMake("3.10"))

	assert.Equal(t, "3.12.4", r.CMakeVersion)
	assert.Equal(t, "cmake", r.CMakeCommand)
	assert.Equal(t, "ctest", r.CTestCommand)
}

func TestMinimumCMakeActivatesInstalledVersion(t *testing.T) {
	base := t.TempDir()
	installCMake(t, base, "cmake-3.9.6", "cmake")
	installCMake(t, base, "cmake-3.12", "cmake")
	runner := &fakeRunner{outputs: map[string]string{
		"cmake --version": versionOutput("3.5.1"),
	}}
	r := newCMakeResolver(t, Linux, runner, base)

	require.NoError(t, r.RequestMinimumCMake("3.10"))

	assert.Equal(t, "3.12", r.CMakeVersion)
	assert.Equal(t, filepath.Join(base, "cmake-3.12", "bin", "cmake"), r.CMakeCommand)
	assert.Equal(t, filepath.Join(base, "cmake-3.12", "bin", "ctest"), r.CTestCommand)
}

// When several installed versions satisfy the minimum, the newest one ends
// up active: the ascending scan re-activates every satisfying candidate.
// This freezes observed behavior; see DESIGN.md.
func TestMinimumScanKeepsNewestSatisfying(t *testing.T) {
	base := t.TempDir()
	installCMake(t, base, "cmake-3.12", "cmake")
	installCMake(t, base, "cmake-3.15.2", "cmake")
	runner := &fakeRunner{outputs: map[string]string{
		"cmake --version": versionOutput("3.5.1"),
	}}
	r := newCMakeResolver(t, Linux, runner, base)

	require.NoError(t, r.RequestMinimumCMake("3.10"))

	assert.Equal(t, "3.15.2", r.CMakeVersion)
	assert.Equal(t, filepath.Join(base, "cmake-3.15.2", "bin", "cmake"), r.CMakeCommand)
}

func TestMinimumCMakeIsMonotonic(t *testing.T) {
	base := t.TempDir()
	installCMake(t, base, "cmake-3.12", "cmake")
	runner := &fakeRunner{outputs: map[string]string{
		"cmake --version": versionOutput("3.5.1"),
	}}
	r := newCMakeResolver(t, Linux, runner, base)

	require.NoError(t, r.RequestMinimumCMake("3.10"))
	require.Equal(t, "3.12", r.CMakeVersion)

	// A second, lower request must not regress the recorded version.
	require.NoError(t, r.RequestMinimumCMake("3.5"))
	assert.Equal(t, "3.12", r.CMakeVersion)
	assert.Equal(t, filepath.Join(base, "cmake-3.12", "bin", "cmake"), r.CMakeCommand)
}

func TestMinimumCMakeNoSatisfyingInstall(t *testing.T) {
	base := t.TempDir()
	installCMake(t, base, "cmake-3.6", "cmake")
	runner := &fakeRunner{outputs: map[string]string{
		"cmake --version": versionOutput("3.5.1"),
	}}
	r := newCMakeResolver(t, Linux, runner, base)

	require.NoError(t, r.RequestMinimumCMake("3.10"))

	// Nothing satisfied the request; the active binary stays in place.
	assert.Equal(t, "3.5.1", r.CMakeVersion)
	assert.Equal(t, "cmake", r.CMakeCommand)
}

func TestAvailableScanSkipsBrokenEntries(t *testing.T) {
	base := t.TempDir()
	installCMake(t, base, "cmake-3.12", "cmake")
	// No cmake binary inside.
	require.NoError(t, os.MkdirAll(filepath.Join(base, "cmake-3.14", "bin"), 0o755))
	// Version token does not parse.
	installCMake(t, base, "cmake-latest", "cmake")
	runner := &fakeRunner{outputs: map[string]string{
		"cmake --version": versionOutput("3.5.1"),
	}}
	r := newCMakeResolver(t, Linux, runner, base)

	require.NoError(t, r.RequestMinimumCMake("3.10"))

	assert.Equal(t, "3.12", r.CMakeVersion)
}

func TestAvailableScanRequiresExeOnWindows(t *testing.T) {
	base := t.TempDir()
	installCMake(t, base, "cmake-3.12", "cmake")     // unix binary only: skipped
	installCMake(t, base, "cmake-3.11", "cmake.exe") // has the .exe: found
	runner := &fakeRunner{outputs: map[string]string{
		"cmake --version": versionOutput("3.5.1"),
	}}
	r := newCMakeResolver(t, Windows, runner, base)

	require.NoError(t, r.RequestMinimumCMake("3.10"))

	assert.Equal(t, "3.11", r.CMakeVersion)
}
