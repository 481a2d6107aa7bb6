package config

import (
	"fmt"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
)

var knownFamilies = map[string]bool{
	"gcc":   true,
	"clang": true,
	"icc":   true,
	"msvc":  true,
}

// Validate checks structural invariants of a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	if cfg.Defaults.Parallelism < 0 {
		errs = append(errs, fmt.Sprintf("defaults.parallelism: must not be negative, got %d", cfg.Defaults.Parallelism))
	}

	for name, node := range cfg.Nodes {
		npath := "nodes." + name

		if node.Parallelism < 0 {
			errs = append(errs, fmt.Sprintf("%s.parallelism: must not be negative, got %d", npath, node.Parallelism))
		}
		if node.CompanionGCC != "" && !strings.HasPrefix(node.CompanionGCC, "gcc") {
			warnings = append(warnings, fmt.Sprintf("%s.companion_gcc: %q does not look like a gcc executable", npath, node.CompanionGCC))
		}
		for family, rangeSpec := range node.Compilers {
			if !knownFamilies[family] {
				warnings = append(warnings, fmt.Sprintf("%s.compilers: unknown family %q (known: gcc, clang, icc, msvc)", npath, family))
			}
			if _, cerr := masterminds.NewConstraint(rangeSpec); cerr != nil {
				errs = append(errs, fmt.Sprintf("%s.compilers.%s: invalid version range %q: %v", npath, family, rangeSpec, cerr))
			}
		}
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("invalid configuration:\n  %s", strings.Join(errs, "\n  "))
	}
	return warnings, nil
}
