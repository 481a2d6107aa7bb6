// Package matrix loads build-matrix files.
//
// A matrix file is a TOML document listing the named configurations a
// project builds in CI, each one an option string:
//
//	[[configurations]]
//	name = "gcc-7-tsan"
//	options = "gcc-7 cmake-3.10 tsan"
//
//	[[configurations]]
//	name = "clang-analyzer"
//	options = "clang-9 clang-static-analyzer-9"
package matrix

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/sofmeright/toolstage/src/options"
)

// Configuration is one row of a build matrix.
type Configuration struct {
	Name    string `toml:"name"`
	Options string `toml:"options"`
	// Node optionally pins the configuration to a specific build node.
	Node string `toml:"node"`
}

// Matrix is a parsed build-matrix file.
type Matrix struct {
	Configurations []Configuration `toml:"configurations"`
}

// Load reads and validates a matrix file. Every row must have a unique
// name and an option string that parses.
func Load(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading matrix file: %w", err)
	}
	var m Matrix
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing matrix file %s: %w", path, err)
	}
	if len(m.Configurations) == 0 {
		return nil, fmt.Errorf("matrix file %s defines no configurations", path)
	}

	seen := make(map[string]bool, len(m.Configurations))
	for i, c := range m.Configurations {
		if c.Name == "" {
			return nil, fmt.Errorf("matrix file %s: configurations[%d] has no name", path, i)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("matrix file %s: duplicate configuration %q", path, c.Name)
		}
		seen[c.Name] = true
		if _, err := options.ParseString(c.Options); err != nil {
			return nil, fmt.Errorf("matrix configuration %q: %w", c.Name, err)
		}
	}
	return &m, nil
}

// Plan returns the parsed option plan of a configuration.
func (c Configuration) Plan() (*options.Plan, error) {
	return options.ParseString(c.Options)
}
