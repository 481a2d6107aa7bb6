package matrix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMatrix(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	m, err := Load(writeMatrix(t, `
[[configurations]]
name = "gcc-7-tsan"
options = "gcc-7 cmake-3.10 tsan"

[[configurations]]
name = "clang-analyzer"
options = "clang-9 clang-static-analyzer-9"
node = "bs-nix-1310"
`))
	require.NoError(t, err)

	require.Len(t, m.Configurations, 2)
	assert.Equal(t, "gcc-7-tsan", m.Configurations[0].Name)
	assert.Equal(t, "bs-nix-1310", m.Configurations[1].Node)

	plan, err := m.Configurations[0].Plan()
	require.NoError(t, err)
	assert.Equal(t, []string{"gcc-7", "cmake-3.10", "tsan"}, plan.Tokens())
}

func TestLoadRejectsUnknownOption(t *testing.T) {
	_, err := Load(writeMatrix(t, `
[[configurations]]
name = "bad"
options = "gcc-7 frobnicate"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestLoadRejectsDuplicateNames(t *testing.T) {
	_, err := Load(writeMatrix(t, `
[[configurations]]
name = "dup"
options = "gcc-7"

[[configurations]]
name = "dup"
options = "gcc-8"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadRejectsEmptyMatrix(t *testing.T) {
	_, err := Load(writeMatrix(t, ""))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
