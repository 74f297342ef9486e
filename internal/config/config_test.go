package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultCatalogueURL, cfg.CatalogueURL)
	assert.Equal(t, DefaultIdentityURL, cfg.IdentityURL)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadFileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("concurrency: 8\nusername: file-user\n"), 0o600))

	t.Setenv("CDSE_USERNAME", "env-user")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Concurrency, "file overrides default")
	assert.Equal(t, "env-user", cfg.Username, "env overrides file")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CDSE_CONCURRENCY", "0")
	_, err := Load("")
	require.Error(t, err)
}

func TestParseIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("CDSE_TEST_INT", "not-a-number")
	assert.Equal(t, 7, ParseInt("CDSE_TEST_INT", 7))

	t.Setenv("CDSE_TEST_INT", "12")
	assert.Equal(t, 12, ParseInt("CDSE_TEST_INT", 7))
}

func TestParseDurationAcceptsSeconds(t *testing.T) {
	t.Setenv("CDSE_TEST_DUR", "90")
	assert.Equal(t, 90*time.Second, ParseDuration("CDSE_TEST_DUR", time.Second))

	t.Setenv("CDSE_TEST_DUR", "2m")
	assert.Equal(t, 2*time.Minute, ParseDuration("CDSE_TEST_DUR", time.Second))
}

func TestParseBool(t *testing.T) {
	t.Setenv("CDSE_TEST_BOOL", "true")
	assert.True(t, ParseBool("CDSE_TEST_BOOL", false))

	t.Setenv("CDSE_TEST_BOOL", "banana")
	assert.True(t, ParseBool("CDSE_TEST_BOOL", true))
}
