package toolchain

// SelectClangStaticAnalyzer wraps the build with scan-build of the given
// version.
//
// The C++ compiler is replaced by the analyzer shim; the real compilers are
// preserved in CCC_CC/CCC_CXX for the shim to invoke. HTML reports go to
// the job's scan_html log directory, and the build invocation is prefixed
// with the scan-build driver. The analyzer needs libc++ rather than the gcc
// standard library, so the matching CMake variables are set as well.
func (r *Resolver) SelectClangStaticAnalyzer(version string) error {
	outputDir, err := r.logs.LogDir("scan_html")
	if err != nil {
		return wrapConfig(err, "resolving analyzer output directory")
	}
	r.AnalyzerOutputDir = outputDir
	r.Env.Set("CCC_CC", r.CCompiler)
	r.Env.Set("CCC_CXX", r.CXXCompiler)
	r.CXXCompiler = "c++-analyzer-" + version
	r.buildPrefixCmd = []string{"scan-build-" + version, "-o", outputDir}
	r.ExtraCMakeOptions["STDLIB_CXX_FLAGS"] = "-stdlib=libc++"
	r.ExtraCMakeOptions["STDLIB_LIBRARIES"] = "-lc++abi -lc++"
	return nil
}
