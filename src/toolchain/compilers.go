package toolchain

import "path/filepath"

// familyHandler applies one compiler family's configuration for a version.
type familyHandler func(r *Resolver, version string) error

// familyHandlers dispatches compiler selection by family. Adding a family
// means adding a handler here and, if it needs vendor setup scripts, a
// version table below.
var familyHandlers = map[Compiler]familyHandler{
	GCC:   applyGCC,
	Clang: applyClang,
	Intel: applyIntel,
	MSVC:  applyMSVC,
}

// SelectCompiler resolves a compiler family and version for the job.
//
// GCC, Clang and MSVC overwrite any previously selected family wholesale.
// Intel on Windows is the one ordering-dependent family: it layers on top
// of an existing MSVC selection and rejects the call otherwise.
func (r *Resolver) SelectCompiler(family Compiler, version string) error {
	handler, ok := familyHandlers[family]
	if !ok {
		return Errorf("unsupported compiler family %q", family)
	}
	if err := r.nodes.ValidateCompiler(r.node, family, version); err != nil {
		return wrapConfig(err, "node %s cannot serve %s-%s", r.node, family, version)
	}
	return handler(r, version)
}

// SelectGCC configures the job to build with gcc-<version>.
func (r *Resolver) SelectGCC(version string) error { return r.SelectCompiler(GCC, version) }

// SelectClang configures the job to build with clang-<version>.
func (r *Resolver) SelectClang(version string) error { return r.SelectCompiler(Clang, version) }

// SelectIntel configures the job to build with the Intel compiler.
func (r *Resolver) SelectIntel(version string) error { return r.SelectCompiler(Intel, version) }

// SelectMSVC configures the job to build with Visual Studio.
func (r *Resolver) SelectMSVC(version string) error { return r.SelectCompiler(MSVC, version) }

func applyGCC(r *Resolver, version string) error {
	r.Compiler = GCC
	r.CompilerVersion = version
	r.CCompiler = "gcc-" + version
	r.CXXCompiler = "g++-" + version
	r.GcovCommand = "gcov-" + version
	// gcc ships a matching standard library; only the link paths need to
	// point at this installation rather than the system default.
	return r.alignStdlibFromGCC("")
}

func applyClang(r *Resolver, version string) error {
	r.Compiler = Clang
	r.CompilerVersion = version
	r.CCompiler = "clang-" + version
	r.CXXCompiler = "clang++-" + version
	r.GcovCommand = ""
	if err := r.alignStdlibFromGCC("--gcc-toolchain=%s"); err != nil {
		return err
	}
	// Sanitizer builds need the llvm-symbolizer shipped with this clang.
	clangPath, err := r.lookPath(r.CCompiler)
	if err != nil {
		return wrapConfig(err, "resolving compiler %s", r.CCompiler)
	}
	clangDir := filepath.Dir(clangPath)
	r.Env.Set("ASAN_SYMBOLIZER_PATH", filepath.Join(clangDir, "llvm-symbolizer"))
	// OpenMP test binaries must find the libomp.so matching this clang,
	// not the gcc libgomp.so.
	r.Env.Set("LD_LIBRARY_PATH", filepath.Join(clangDir, "..", "lib"))
	return nil
}

// intelKnownYears are the two-digit release years with a vendor setup
// script installed on the nodes. Anything else is rejected rather than
// pointing the job at a script that does not exist.
var intelKnownYears = map[string]bool{
	"16": true,
	"17": true,
	"18": true,
	"19": true,
}

// intelLinuxScripts maps legacy dotted Intel versions to their setup
// scripts. Two-digit year versions are handled generically.
var intelLinuxScripts = map[string]string{
	"16.0": ". /opt/intel/compilers_and_libraries_2016/linux/bin/compilervars.sh intel64",
	"15.0": ". /opt/intel/composer_xe_2015/bin/compilervars.sh intel64",
	"14.0": ". /opt/intel/composer_xe_2013_sp1/bin/compilervars.sh intel64",
	"13.0": ". /opt/intel/composer_xe_2013/bin/compilervars.sh intel64",
	"12.1": ". /opt/intel/composer_xe_2011_sp1/bin/compilervars.sh intel64",
}

func applyIntel(r *Resolver, version string) error {
	if r.System == Windows {
		return applyIntelWindows(r, version)
	}
	r.CCompiler = "icc"
	r.CXXCompiler = "icpc"
	r.Compiler = Intel
	r.GcovCommand = ""

	var script string
	switch {
	case intelKnownYears[version]:
		script = ". /opt/intel/compilers_and_libraries_20" + version + "/linux/bin/compilervars.sh intel64"
	case intelLinuxScripts[version] != "":
		script = intelLinuxScripts[version]
	default:
		return Errorf("invalid icc version: got icc-%s. Try a known two-digit release year, e.g. 18 for the 2018 release", version)
	}
	if err := r.runEnvScript(script); err != nil {
		return err
	}
	// icc uses the C++ headers and standard library of whatever gcc it
	// finds in the path, which is not always suitable; pin the node's
	// companion gcc instead.
	if err := r.alignStdlibFromGCC("-gcc-name=%s/bin/gcc"); err != nil {
		return err
	}
	r.CompilerVersion = version
	return nil
}

func applyIntelWindows(r *Resolver, version string) error {
	if r.Compiler != MSVC {
		return Errorf("need to specify an msvc version before icc-%s on windows", version)
	}
	msvcVersion := r.CompilerVersion
	r.CCompiler = "icl"
	r.CXXCompiler = "icl"
	r.Compiler = Intel
	r.ExtraCMakeOptions["CMAKE_EXE_LINKER_FLAGS"] = `"/machine:x64"`

	var script string
	switch {
	case version == "15.0":
		script = `"C:\Program Files (x86)\Intel\Composer XE 2015\bin\compilervars.bat" intel64 vs` + msvcVersion
	case version == "16.0":
		script = `"C:\Program Files (x86)\IntelSWTools\compilers_and_libraries_2016\windows\bin\compilervars.bat" intel64 vs` + msvcVersion
	case intelKnownYears[version]:
		script = `"C:\Program Files (x86)\IntelSWTools\compilers_and_libraries_20` + version + `\windows\bin\compilervars.bat" intel64 vs` + msvcVersion
	default:
		return Errorf("invalid icc version: got icc-%s. Try a known two-digit release year, e.g. 18 for the 2018 release", version)
	}
	if err := r.runEnvScript(script); err != nil {
		return err
	}
	r.CompilerVersion = version
	return nil
}

// msvcScripts maps supported Visual Studio versions to vcvarsall invocations.
var msvcScripts = map[string]string{
	"2010": `"C:\Program Files (x86)\Microsoft Visual Studio 10.0\VC\vcvarsall.bat" amd64`,
	"2013": `"C:\Program Files (x86)\Microsoft Visual Studio 12.0\VC\vcvarsall.bat" amd64`,
	"2015": `"C:\Program Files (x86)\Microsoft Visual Studio 14.0\VC\vcvarsall.bat" amd64`,
}

func applyMSVC(r *Resolver, version string) error {
	script, ok := msvcScripts[version]
	if !ok {
		return Errorf("only Visual Studio 2010, 2013, and 2015 are supported, got msvc-%s", version)
	}
	r.Compiler = MSVC
	r.CompilerVersion = version
	r.CCompiler = ""
	r.CXXCompiler = ""
	r.GcovCommand = ""
	return r.runEnvScript(script)
}
