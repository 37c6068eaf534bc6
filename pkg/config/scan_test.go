package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScanConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ignore_paths:
  - "/internal/*"
  - "/health"
custom_sensitive_fields:
  - loyalty_tier
compliance: gdpr
rules:
  missing-auth: error
`), 0644))

	cfg, err := LoadScanConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/internal/*", "/health"}, cfg.IgnorePaths)
	assert.Equal(t, []string{"loyalty_tier"}, cfg.CustomSensitiveFields)
	assert.Equal(t, "gdpr", cfg.Compliance)
	assert.Equal(t, "error", cfg.Rules["missing-auth"])
}

func TestLoadScanConfigMissingDefaultIsEmpty(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := LoadScanConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.IgnorePaths)
	assert.Empty(t, cfg.Compliance)
}

func TestLoadScanConfigExplicitMissingFails(t *testing.T) {
	_, err := LoadScanConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScanConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ignore_paths: {nope"), 0644))
	_, err := LoadScanConfig(path)
	assert.Error(t, err)
}
