package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sofmeright/toolstage/src/toolchain"
)

// ResolveReport renders the resolved toolchain as framed sections: the
// selected compilers and cmake first, then the extra cmake options, then
// the full environment the build would run under.
func ResolveReport(w io.Writer, r *toolchain.Resolver, color bool) {
	sec := NewSection(w, "Toolchain", color)
	sec.Field("system", string(r.System))
	if r.Compiler != "" {
		sec.Field("compiler", fmt.Sprintf("%s-%s", r.Compiler, r.CompilerVersion))
	}
	sec.Field("cc", r.CCompiler)
	sec.Field("cxx", r.CXXCompiler)
	sec.Field("gcov", r.GcovCommand)
	sec.Field("cmake", r.CMakeCommand)
	sec.Field("cmake version", r.CMakeVersion)
	sec.Field("ctest", r.CTestCommand)
	sec.Field("generator", r.CMakeGenerator)
	sec.Field("cuda root", r.CudaRoot)
	sec.Field("cuda host compiler", r.CudaHostCompiler)
	sec.Field("amd app sdk", r.AmdAppSDKRoot)
	sec.Field("analyzer output", r.AnalyzerOutputDir)
	sec.Field("build jobs", fmt.Sprintf("%d", r.BuildJobs()))
	if prefix := r.BuildPrefixCmd(); len(prefix) > 0 {
		sec.Field("build prefix", strings.Join(prefix, " "))
	}

	if len(r.ExtraCMakeOptions) > 0 {
		sec.Separator()
		keys := make([]string, 0, len(r.ExtraCMakeOptions))
		for k := range r.ExtraCMakeOptions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sec.Field("-D"+k, r.ExtraCMakeOptions[k])
		}
	}
	sec.Close()

	sec = NewSection(w, "Environment", color)
	for _, entry := range r.Env.Environ() {
		sec.Row("%s", entry)
	}
	sec.Close()
}
