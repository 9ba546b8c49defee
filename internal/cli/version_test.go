package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(rootCmd, "version")
	assert.NoError(t, err)
	assert.Equal(t, "dev (api 1.0.0)\n", output)
}

func TestVersionCommandJSON(t *testing.T) {
	output, err := executeCommand(rootCmd, "version", "--output", "json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(output), &info))
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "1.0.0", info.APIVersion)
}

func TestVersionCommandYAML(t *testing.T) {
	output, err := executeCommand(rootCmd, "version", "--output", "yaml")
	assert.NoError(t, err)
	assert.Contains(t, output, "api_version: 1.0.0")
}

func TestBuildVariables(t *testing.T) {
	// Test that build variables have sensible defaults
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, Commit)
	assert.NotEmpty(t, Date)
	assert.NotEmpty(t, GoVersion)
	assert.Contains(t, GoVersion, "go")
}
