package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRun_SinglePatient(t *testing.T) {
	out, _, err := execute(t, "run", "--patients", "1", "--seed", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "🚑 Treating Patient 0 (Severity: "), lines[0])
}

func TestRun_Deterministic(t *testing.T) {
	first, _, err := execute(t, "run", "-n", "25", "--seed", "99", "--rounds", "2")
	require.NoError(t, err)
	second, _, err := execute(t, "run", "-n", "25", "--seed", "99", "--rounds", "2", "--workers", "4")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "--- Round 1 ---")
	assert.Contains(t, first, "--- Round 2 ---")
	assert.Equal(t, 75, strings.Count(first, "Treating Patient"))
}

func TestRun_ConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ward.yaml")
	require.NoError(t, os.WriteFile(path, []byte("patients: 4\nseed: 11\nrounds: 1\n"), 0o600))

	out, _, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, 8, strings.Count(out, "Treating Patient"))

	out, _, err = execute(t, "run", "--config", path, "--rounds", "0")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "Treating Patient"))
}

func TestRun_Styled(t *testing.T) {
	out, _, err := execute(t, "run", "-n", "6", "--styled")
	require.NoError(t, err)
	assert.Contains(t, out, "Rank")
	assert.Contains(t, out, "6 patients")
	assert.NotContains(t, out, "Treating Patient")
}

func TestRun_InvalidSettings(t *testing.T) {
	_, _, err := execute(t, "run", "--patients", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Patients")

	_, _, err = execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestRun_LogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "run", "-n", "3", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"simulation started"`)
	assert.NotContains(t, out, `"msg"`)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "triage "+Version))
}
