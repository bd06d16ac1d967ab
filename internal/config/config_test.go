package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://api.github.com/graphql", cfg.GitHub.Endpoint)
	assert.Equal(t, "Description", cfg.Defaults.BodyField)
	assert.Equal(t, "ededed", cfg.Defaults.LabelColor)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_OverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
github:
  endpoint: https://github.example.com/api/graphql
defaults:
  body_field: Notes
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://github.example.com/api/graphql", cfg.GitHub.Endpoint)
	assert.Equal(t, "Notes", cfg.Defaults.BodyField)
	// Unset fields keep their defaults.
	assert.Equal(t, "ededed", cfg.Defaults.LabelColor)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("GHPMCP_TEST_LOG", "/tmp/ghpmcp-test.log")

	path := writeConfig(t, `
logging:
  file: ${GHPMCP_TEST_LOG}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ghpmcp-test.log", cfg.Logging.File)
}

func TestLoad_InvalidLevel(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: loud
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestLoad_InvalidFormat(t *testing.T) {
	path := writeConfig(t, `
logging:
  format: xml
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
