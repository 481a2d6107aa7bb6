package toolchain

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sofmeright/toolstage/src/vertuple"
)

var cmakeVersionRe = regexp.MustCompile(`cmake version (\S+)`)

// RequestMinimumCMake makes sure the active CMake is at least the given
// version.
//
// The request is a no-op when no version is given or a CMake version has
// already been recorded for this job (the recorded version only ever
// advances, never regresses). Otherwise the active cmake binary is queried;
// if it is too old, the node's CMake installation directory is scanned for
// a distribution satisfying the minimum and that installation's binaries
// are activated.
//
// When several installed versions satisfy the minimum the newest one wins:
// the scan walks versions in ascending order and re-activates every
// satisfying candidate. Kept as observed in production.
func (r *Resolver) RequestMinimumCMake(version string) error {
	if version == "" || r.CMakeVersion != "" {
		return nil
	}
	current, err := r.queryCMakeVersion()
	if err != nil {
		return err
	}
	r.CMakeVersion = current

	older, err := vertuple.IsOlder(current, version)
	if err != nil {
		return wrapConfig(err, "comparing cmake versions %q and %q", current, version)
	}
	if !older {
		return nil
	}

	available, err := r.availableCMakeVersions()
	if err != nil {
		return wrapConfig(err, "scanning cmake installations under %s", r.cmakeBaseDir)
	}
	for _, candidate := range available {
		tooOld, err := vertuple.IsOlder(candidate, version)
		if err != nil {
			return wrapConfig(err, "comparing cmake versions %q and %q", candidate, version)
		}
		if !tooOld {
			r.activateCMake(candidate)
		}
	}
	return nil
}

func (r *Resolver) queryCMakeVersion() (string, error) {
	out, err := r.runner.Output(r.Env.Environ(), r.CMakeCommand, "--version")
	if err != nil {
		return "", wrapConfig(err, "querying version of %s", r.CMakeCommand)
	}
	m := cmakeVersionRe.FindStringSubmatch(out)
	if m == nil {
		return "", Errorf("unexpected %s --version output: %q", r.CMakeCommand, out)
	}
	return m[1], nil
}

// availableCMakeVersions lists installed CMake distributions under the
// node's base directory, ascending by version. The version is the trailing
// dash-separated token of the directory name; entries without a working
// cmake binary or with an unparseable version token are skipped.
func (r *Resolver) availableCMakeVersions() ([]string, error) {
	entries, err := os.ReadDir(r.cmakeBaseDir)
	if err != nil {
		return nil, err
	}
	var versions []string
	for _, entry := range entries {
		bin := filepath.Join(r.cmakeBaseDir, entry.Name(), "bin", "cmake")
		if r.System == Windows {
			bin += ".exe"
		}
		info, err := os.Stat(bin)
		if err != nil || info.IsDir() {
			continue
		}
		parts := strings.Split(entry.Name(), "-")
		version := parts[len(parts)-1]
		if _, err := vertuple.Parse(version); err != nil {
			continue
		}
		versions = append(versions, version)
	}
	sort.Slice(versions, func(i, j int) bool {
		older, err := vertuple.IsOlder(versions[i], versions[j])
		return err == nil && older
	})
	return versions, nil
}

// activateCMake switches the job to an installed CMake distribution.
// Both "cmake-<version>" and bare "<version>" directory layouts exist on
// the nodes.
func (r *Resolver) activateCMake(version string) {
	binDir := filepath.Join(r.cmakeBaseDir, "cmake-"+version, "bin")
	if _, err := os.Stat(binDir); err != nil {
		binDir = filepath.Join(r.cmakeBaseDir, version, "bin")
	}
	r.CMakeCommand = filepath.Join(binDir, "cmake")
	r.CTestCommand = filepath.Join(binDir, "ctest")
	r.CMakeVersion = version
}
