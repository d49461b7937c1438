package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCommandPassingScenario(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join("testdata", "scenarios", "stimulus.yaml")})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "PASS stimulus-two-years")
	assert.Contains(t, buf.String(), "1/1 scenarios passed")
}

func TestTestCommandFailingScenario(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join("testdata", "scenarios", "failing.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "FAIL stimulus-wrong-expectation")
	assert.Contains(t, buf.String(), "0/1 scenarios passed")
}

func TestTestCommandMixedScenarios(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		filepath.Join("testdata", "scenarios", "stimulus.yaml"),
		filepath.Join("testdata", "scenarios", "failing.yaml"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, data["all_passed"])
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(1), data["passed"])
}

func TestTestCommandMissingScenario(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join("testdata", "scenarios", "missing.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
