package toolchain

// Accelerator and auxiliary option handlers. Each is independent of the
// others and idempotent for identical arguments.

// SetCUDA records the CUDA toolkit root for the requested version.
func (r *Resolver) SetCUDA(version string) {
	r.CudaRoot = "/opt/cuda_" + version
}

// SetAMDAppSDK records the AMD APP SDK root for the requested version.
func (r *Resolver) SetAMDAppSDK(version string) {
	r.AmdAppSDKRoot = "/opt/AMDAPPSDK-" + version
}

// SetPhi points CMake at the libxml2 build used for Xeon Phi support.
func (r *Resolver) SetPhi() {
	r.ExtraCMakeOptions["CMAKE_PREFIX_PATH"] = r.expandHome("~/utils/libxml2")
}

// SetTSAN selects the futex-free gcc runtime needed under thread sanitizer.
// Only one node's tsan configuration needs it, but it does no harm elsewhere.
func (r *Resolver) SetTSAN() {
	r.Env.Set("LD_LIBRARY_PATH", r.expandHome("~/tools/gcc-nofutex/lib64"))
}

// SetAtlas adds the ATLAS BLAS/LAPACK installation to the library search.
func (r *Resolver) SetAtlas() {
	r.Env.Set("CMAKE_LIBRARY_PATH", "/usr/lib/atlas-base")
}

// SetMPI switches the active compilers to the MPI wrappers while keeping
// the underlying compiler identity in OMPI_CC/OMPI_CXX for the wrapper.
//
// For gcc and icc on non-Windows systems the underlying C compiler's
// absolute path is also recorded as the CUDA host compiler. The C compiler
// is used rather than the C++ one because old nvcc releases only recognize
// icc, not icpc, and the C compiler works for every case.
func (r *Resolver) SetMPI() error {
	if (r.Compiler == GCC || r.Compiler == Intel) && r.System != Windows {
		path, err := r.lookPath(r.CCompiler)
		if err != nil {
			return wrapConfig(err, "could not determine the full path to the compiler (%s)", r.CCompiler)
		}
		r.CudaHostCompiler = path
	}
	r.Env.Set("OMPI_CC", r.CCompiler)
	r.Env.Set("OMPI_CXX", r.CXXCompiler)
	r.CCompiler = "mpicc"
	r.CXXCompiler = "mpic++"
	return nil
}
