// Package toolchain resolves build options into a concrete toolchain.
//
// A Resolver is created once per build job, bound to a node and an operating
// system. Option handlers are then invoked in the order the option driver
// dictates; each call mutates the resolver's configuration (compiler
// identity, CMake binaries, accelerator roots, extra CMake variables, and
// the job's environment model). Once the handler chain is done the resolver
// is a read model the build driver assembles its invocation from.
//
// Nothing here touches the process environment: all environment mutations
// land in the Environment owned by the resolver and are applied only when a
// command is actually launched.
package toolchain

import "fmt"

// System identifies the operating system of the build node.
type System string

const (
	Linux   System = "linux"
	Windows System = "windows"
	MacOS   System = "macos"
)

// ParseSystem maps common OS spellings onto a System.
func ParseSystem(name string) (System, error) {
	switch name {
	case "linux":
		return Linux, nil
	case "windows":
		return Windows, nil
	case "macos", "darwin", "osx":
		return MacOS, nil
	}
	return "", Errorf("unknown operating system %q (supported: linux, windows, macos)", name)
}

// Compiler identifies a compiler family.
type Compiler string

const (
	GCC   Compiler = "gcc"
	Clang Compiler = "clang"
	Intel Compiler = "icc"
	MSVC  Compiler = "msvc"
)

// NodeInfo supplies per-node defaults the resolver cannot derive itself.
type NodeInfo interface {
	// DefaultParallelism returns the node's default build job count.
	DefaultParallelism(node string) int

	// EnvironmentSubshell returns a command to source before building on
	// this node, or "" when the node needs none.
	EnvironmentSubshell(node string) string

	// CompanionGCC returns the gcc executable whose standard library
	// non-gcc compilers on this node should link against, or "".
	CompanionGCC(node string) string

	// ValidateCompiler rejects compiler selections the node cannot serve.
	ValidateCompiler(node string, compiler Compiler, version string) error
}

// LogDirProvider hands out per-category log directories.
type LogDirProvider interface {
	LogDir(category string) (string, error)
}

// ConfigurationError reports an unsupported or malformed build option.
// It is fatal to the job; the message carries the offending value verbatim.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Errorf builds a ConfigurationError from a format string.
func Errorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

func wrapConfig(err error, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...), Err: err}
}
