package toolchain

import (
	"fmt"
	"path/filepath"
)

// alignStdlibFromGCC points the selected compiler at the C++ standard
// library of a specific gcc installation.
//
// Artefacts built by any C++ compiler need link-time access to a standard
// library, and OpenMP or sanitizer runtimes are typically installed
// alongside it. For gcc the just-selected compiler's own installation is
// used; for clang and icc the node's companion gcc is, since the system
// default may be absent or too old.
//
// stdlibFlagFormat, when non-empty, is a fmt format with one %s verb for
// the toolchain root; the rendered flag is appended to both CFLAGS and
// CXXFLAGS. The linker rpath/search-path CMake variable is set in every
// case where a toolchain root is known.
func (r *Resolver) alignStdlibFromGCC(stdlibFlagFormat string) error {
	var gccName string
	switch r.Compiler {
	case GCC:
		gccName = r.CCompiler
	case Clang, Intel:
		gccName = r.nodes.CompanionGCC(r.node)
	}
	if gccName == "" {
		return nil
	}

	gccPath, err := r.lookPath(gccName)
	if err != nil {
		return wrapConfig(err, "resolving companion gcc %s", gccName)
	}
	toolchainRoot := filepath.Dir(filepath.Dir(gccPath))

	if stdlibFlagFormat != "" {
		flag := fmt.Sprintf(stdlibFlagFormat, toolchainRoot)
		r.Env.Append("CFLAGS", flag, " ")
		r.Env.Append("CXXFLAGS", flag, " ")
	}
	lib64 := toolchainRoot + "/lib64"
	r.ExtraCMakeOptions["CMAKE_CXX_LINK_FLAGS"] = fmt.Sprintf("-Wl,-rpath,%s -L%s", lib64, lib64)
	return nil
}
