package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookPathUsesModelPath(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	tool := filepath.Join(bin, "gcc-7")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o755))

	r := NewLocalRunner()

	// The directory is on the model PATH only, not the process PATH.
	path, err := r.LookPath([]string{"PATH=" + bin}, "gcc-7")
	require.NoError(t, err)
	assert.Equal(t, tool, path)

	_, err = r.LookPath([]string{"PATH=" + bin}, "gcc-8")
	assert.Error(t, err)
}

func TestLookPathSkipsNonExecutable(t *testing.T) {
	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, "gcc-7"), []byte("data"), 0o644))

	_, err := NewLocalRunner().LookPath([]string{"PATH=" + bin}, "gcc-7")
	assert.Error(t, err)
}

func TestMergedEnvModelWins(t *testing.T) {
	t.Setenv("TOOLSTAGE_TEST_VAR", "process")

	merged := MergedEnv([]string{"TOOLSTAGE_TEST_VAR=model", "TOOLSTAGE_TEST_NEW=added"})

	assert.Contains(t, merged, "TOOLSTAGE_TEST_VAR=model")
	assert.NotContains(t, merged, "TOOLSTAGE_TEST_VAR=process")
	assert.Contains(t, merged, "TOOLSTAGE_TEST_NEW=added")
}

func TestParseEnvDump(t *testing.T) {
	dump := "PATH=/opt/intel/bin:/usr/bin\nINTEL_LICENSE_FILE=/opt/intel/licenses\nEMPTY=\nnoise line\n"

	env := ParseEnvDump(dump)

	assert.Equal(t, map[string]string{
		"PATH":               "/opt/intel/bin:/usr/bin",
		"INTEL_LICENSE_FILE": "/opt/intel/licenses",
		"EMPTY":              "",
	}, env)
}

func TestParseEnvDumpKeepsEqualsInValue(t *testing.T) {
	env := ParseEnvDump("CFLAGS=-O2 -DX=1\r\n")
	assert.Equal(t, "-O2 -DX=1", env["CFLAGS"])
}
