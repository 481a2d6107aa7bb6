// Package config loads the per-site node configuration.
//
// The file describes the build nodes toolstage may resolve toolchains for:
// default parallelism, the command to source a node's environment, the gcc
// whose standard library non-gcc compilers link against, and optional
// constraints on the compiler versions a node can serve.
package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".toolstage.yml"

// Config is the top-level toolstage configuration.
type Config struct {
	Defaults DefaultsConfig        `yaml:"defaults"`
	Nodes    map[string]NodeConfig `yaml:"nodes"`
}

// DefaultsConfig applies to nodes without an explicit entry.
type DefaultsConfig struct {
	// Parallelism is the build job count for unconfigured nodes.
	Parallelism int `yaml:"parallelism"`
	// CMakeBaseDir overrides the per-system CMake installation directory.
	CMakeBaseDir string `yaml:"cmake_base_dir"`
}

// NodeConfig describes one build node.
type NodeConfig struct {
	Parallelism int `yaml:"parallelism"`
	// EnvironmentSubshell is a command sourced before building, e.g.
	// "module load buildenv". Empty when the node needs none.
	EnvironmentSubshell string `yaml:"environment_subshell"`
	// CompanionGCC names the gcc whose standard library clang and icc
	// builds on this node link against, e.g. "gcc-8".
	CompanionGCC string `yaml:"companion_gcc"`
	// Compilers maps a compiler family to a version range the node can
	// serve, e.g. gcc: ">=5 <13". Families not listed are unconstrained.
	Compilers map[string]string `yaml:"compilers"`
}

// Load reads configuration from a YAML file.
// If path is empty, it tries the default file.
// Returns sensible defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Defaults: DefaultsConfig{Parallelism: 1},
		Nodes:    map[string]NodeConfig{},
	}
}
