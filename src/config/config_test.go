package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/toolstage/src/toolchain"
)

const sampleConfig = `
defaults:
  parallelism: 2
nodes:
  bs-nix-1310:
    parallelism: 8
    companion_gcc: gcc-8
    compilers:
      gcc: ">=4.9 <13"
      clang: ">=3.4"
  bs-win-2012:
    parallelism: 4
    environment_subshell: call c:\utils\buildenv.bat
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".toolstage.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Defaults.Parallelism)
	require.Contains(t, cfg.Nodes, "bs-nix-1310")
	assert.Equal(t, "gcc-8", cfg.Nodes["bs-nix-1310"].CompanionGCC)
	assert.Equal(t, `call c:\utils\buildenv.bat`, cfg.Nodes["bs-win-2012"].EnvironmentSubshell)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Defaults.Parallelism)
	assert.Empty(t, cfg.Nodes)
}

func TestNodeDirectoryDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	dir := NewNodeDirectory(cfg)

	assert.Equal(t, 8, dir.DefaultParallelism("bs-nix-1310"))
	assert.Equal(t, 2, dir.DefaultParallelism("unknown-node"))
	assert.Equal(t, "gcc-8", dir.CompanionGCC("bs-nix-1310"))
	assert.Empty(t, dir.CompanionGCC("unknown-node"))
	assert.Empty(t, dir.EnvironmentSubshell("bs-nix-1310"))
	assert.Equal(t, `call c:\utils\buildenv.bat`, dir.EnvironmentSubshell("bs-win-2012"))
}

func TestValidateCompiler(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	dir := NewNodeDirectory(cfg)

	assert.NoError(t, dir.ValidateCompiler("bs-nix-1310", toolchain.GCC, "7"))
	assert.NoError(t, dir.ValidateCompiler("bs-nix-1310", toolchain.Clang, "6.0"))
	// icc has no declared range on this node.
	assert.NoError(t, dir.ValidateCompiler("bs-nix-1310", toolchain.Intel, "18"))
	// Unconfigured nodes are unconstrained.
	assert.NoError(t, dir.ValidateCompiler("unknown-node", toolchain.GCC, "13"))

	err = dir.ValidateCompiler("bs-nix-1310", toolchain.GCC, "13")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ">=4.9 <13")
}

func TestValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	warnings, err := Validate(cfg)
	assert.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateRejectsBadRange(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
nodes:
  bs-1:
    compilers:
      gcc: "not a range"
`))
	require.NoError(t, err)

	_, err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a range")
}

func TestValidateWarnsUnknownFamily(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
nodes:
  bs-1:
    companion_gcc: cc
    compilers:
      fortran: ">=1"
`))
	require.NoError(t, err)

	warnings, err := Validate(cfg)
	assert.NoError(t, err)
	assert.Len(t, warnings, 2)
}
