package config

import (
	"fmt"

	masterminds "github.com/Masterminds/semver/v3"
	"github.com/sofmeright/toolstage/src/toolchain"
)

// NodeDirectory answers toolchain.NodeInfo queries from the loaded
// configuration. Unconfigured nodes fall back to the defaults section.
type NodeDirectory struct {
	cfg *Config
}

// NewNodeDirectory wraps a loaded configuration.
func NewNodeDirectory(cfg *Config) *NodeDirectory {
	return &NodeDirectory{cfg: cfg}
}

// DefaultParallelism returns the node's build job count.
func (d *NodeDirectory) DefaultParallelism(node string) int {
	if n, ok := d.cfg.Nodes[node]; ok && n.Parallelism > 0 {
		return n.Parallelism
	}
	if d.cfg.Defaults.Parallelism > 0 {
		return d.cfg.Defaults.Parallelism
	}
	return 1
}

// EnvironmentSubshell returns the command sourced before building, or "".
func (d *NodeDirectory) EnvironmentSubshell(node string) string {
	return d.cfg.Nodes[node].EnvironmentSubshell
}

// CompanionGCC returns the gcc whose standard library non-gcc compilers on
// this node should use, or "".
func (d *NodeDirectory) CompanionGCC(node string) string {
	return d.cfg.Nodes[node].CompanionGCC
}

// ValidateCompiler checks a compiler selection against the node's declared
// version range for that family. Families without a declared range accept
// any version.
func (d *NodeDirectory) ValidateCompiler(node string, compiler toolchain.Compiler, version string) error {
	rangeSpec, ok := d.cfg.Nodes[node].Compilers[string(compiler)]
	if !ok {
		return nil
	}
	constraint, err := masterminds.NewConstraint(rangeSpec)
	if err != nil {
		return fmt.Errorf("invalid version range %q for %s on node %s: %w", rangeSpec, compiler, node, err)
	}
	v, err := masterminds.NewVersion(version)
	if err != nil {
		return fmt.Errorf("version %q is not comparable against range %q: %w", version, rangeSpec, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("version %s is outside the supported range %q", version, rangeSpec)
	}
	return nil
}

// NodeNames returns the configured node names, unsorted.
func (d *NodeDirectory) NodeNames() []string {
	names := make([]string, 0, len(d.cfg.Nodes))
	for name := range d.cfg.Nodes {
		names = append(names, name)
	}
	return names
}

// Node returns the raw configuration of a node.
func (d *NodeDirectory) Node(name string) (NodeConfig, bool) {
	n, ok := d.cfg.Nodes[name]
	return n, ok
}
