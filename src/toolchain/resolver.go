package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sofmeright/toolstage/src/shell"
)

// Resolver holds the configuration resolved from build options for one job.
//
// Exported fields are the read model the build driver consumes once the
// handler chain has run. They must not be mutated from outside.
type Resolver struct {
	System          System
	Compiler        Compiler // "" until a family is selected
	CompilerVersion string

	CCompiler   string // C compiler executable name or path
	CXXCompiler string
	GcovCommand string // set only for gcc

	CMakeCommand   string // "cmake" until a specific version is activated
	CTestCommand   string
	CMakeVersion   string
	CMakeGenerator string

	CudaRoot         string
	CudaHostCompiler string
	AmdAppSDKRoot    string

	AnalyzerOutputDir string

	// ExtraCMakeOptions accumulates -D variables across handlers; last
	// write wins per key.
	ExtraCMakeOptions map[string]string

	// Env is the job's environment model (see Environment).
	Env *Environment

	node           string
	runner         shell.Runner
	nodes          NodeInfo
	logs           LogDirProvider
	home           string
	cmakeBaseDir   string
	buildJobs      int
	buildPrefixCmd []string
}

// Options configures a new Resolver.
type Options struct {
	System System
	Node   string
	Runner shell.Runner
	Nodes  NodeInfo
	Logs   LogDirProvider

	// Home overrides the home directory used to expand "~" paths.
	Home string
	// CMakeBaseDir overrides the per-system CMake installation directory.
	CMakeBaseDir string
}

// New creates a resolver bound to a node and an operating system and applies
// the node's baseline environment (search path, environment subshell).
func New(opts Options) (*Resolver, error) {
	r := &Resolver{
		System:            opts.System,
		CMakeCommand:      "cmake",
		CTestCommand:      "ctest",
		ExtraCMakeOptions: make(map[string]string),
		Env:               NewEnvironment(),
		node:              opts.Node,
		runner:            opts.Runner,
		nodes:             opts.Nodes,
		logs:              opts.Logs,
		home:              opts.Home,
		cmakeBaseDir:      opts.CMakeBaseDir,
	}
	if r.home == "" {
		if home, err := os.UserHomeDir(); err == nil {
			r.home = home
		}
	}

	r.buildJobs = r.nodes.DefaultParallelism(r.node)
	if r.buildJobs < 1 {
		r.buildJobs = 1
	}

	if subshell := r.nodes.EnvironmentSubshell(r.node); subshell != "" {
		snapshot, err := r.runner.CaptureEnv(r.Env.Environ(), subshell+" -- "+r.CMakeCommand+" -E environment")
		if err != nil {
			return nil, wrapConfig(err, "importing environment subshell for node %s", r.node)
		}
		r.Env.Merge(snapshot)
	}

	r.initSystem()
	return r, nil
}

func (r *Resolver) initSystem() {
	switch r.System {
	case Windows:
		r.CMakeGenerator = "NMake Makefiles JOM"
		if r.cmakeBaseDir == "" {
			r.cmakeBaseDir = `c:\utils`
		}
	default:
		r.PrependPath("~/bin")
		if r.System == MacOS {
			r.Env.Set("CMAKE_PREFIX_PATH", "/opt/local")
		}
		if r.cmakeBaseDir == "" {
			r.cmakeBaseDir = "/opt/cmake"
		}
	}
}

// pathSep is the search-path separator of the target system, not of the
// machine running the resolver.
func (r *Resolver) pathSep() string {
	if r.System == Windows {
		return ";"
	}
	return ":"
}

// PrependPath puts a directory at the front of the executable search path.
func (r *Resolver) PrependPath(path string) {
	r.Env.Prepend("PATH", r.expandHome(path), r.pathSep())
}

// AppendPath puts a directory at the end of the executable search path.
func (r *Resolver) AppendPath(path string) {
	r.Env.Append("PATH", r.expandHome(path), r.pathSep())
}

func (r *Resolver) expandHome(path string) string {
	if path == "~" {
		return r.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(r.home, path[2:])
	}
	return path
}

// runEnvScript sources a vendor environment script and merges the
// environment it leaves behind into the job's environment model.
func (r *Resolver) runEnvScript(envCmd string) error {
	snapshot, err := r.runner.CaptureEnv(r.Env.Environ(), envCmd+" && "+r.CMakeCommand+" -E environment")
	if err != nil {
		return wrapConfig(err, "sourcing environment script %q", envCmd)
	}
	r.Env.Merge(snapshot)
	return nil
}

// lookPath resolves an executable under the job's environment model, so a
// PATH entry added by an earlier handler is visible to later lookups.
func (r *Resolver) lookPath(name string) (string, error) {
	return r.runner.LookPath(r.Env.Environ(), name)
}

// SetBuildJobs overrides the node's default build parallelism.
func (r *Resolver) SetBuildJobs(jobs int) error {
	if jobs < 1 {
		return Errorf("invalid build parallelism %d: must be a positive integer", jobs)
	}
	r.buildJobs = jobs
	return nil
}

// BuildJobs returns the effective build parallelism.
func (r *Resolver) BuildJobs() int { return r.buildJobs }

// BuildPrefixCmd returns the tokens that must wrap the build invocation
// (e.g. the static analyzer driver), or nil.
func (r *Resolver) BuildPrefixCmd() []string { return r.buildPrefixCmd }

// BuildCommand assembles the build invocation for the resolved toolchain.
func (r *Resolver) BuildCommand(target string, parallel, keepGoing bool) []string {
	var cmd []string
	cmd = append(cmd, r.buildPrefixCmd...)
	cmd = append(cmd, r.CMakeCommand, "--build", ".")
	if target != "" {
		cmd = append(cmd, "--target", target)
	}
	jobs := 1
	if parallel {
		jobs = r.buildJobs
	}
	cmd = append(cmd, "--", fmt.Sprintf("-j%d", jobs))
	if keepGoing {
		cmd = append(cmd, "-k")
	}
	return cmd
}

// CppcheckCommand returns the path of the requested cppcheck version.
func (r *Resolver) CppcheckCommand(version string) string {
	return r.expandHome("~/bin/cppcheck-" + version)
}

// DoxygenCommand returns the path of the requested Doxygen version.
func (r *Resolver) DoxygenCommand(version string) string {
	return r.expandHome("~/tools/doxygen-" + version + "/bin/doxygen")
}

// UncrustifyCommand returns the path of the uncrustify executable.
func (r *Resolver) UncrustifyCommand() string {
	return r.expandHome("~/bin/uncrustify")
}
