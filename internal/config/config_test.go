package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "verification", cfg.OutputDir)
	assert.Equal(t, 60*time.Second, cfg.NavTimeout)
	assert.Equal(t, 30*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.SelectorTimeout)
	assert.False(t, cfg.ShowUI)
	assert.Empty(t, cfg.ProxyURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("VERIFY_BASE_URL", "http://127.0.0.1:8080")
	t.Setenv("VERIFY_OUTPUT_DIR", "/tmp/shots")
	t.Setenv("VERIFY_SELECTOR_TIMEOUT", "5s")
	t.Setenv("VERIFY_SHOW_UI", "true")
	t.Setenv("CHROME_BIN", "/usr/bin/chromium")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080", cfg.BaseURL)
	assert.Equal(t, "/tmp/shots", cfg.OutputDir)
	assert.Equal(t, 5*time.Second, cfg.SelectorTimeout)
	assert.True(t, cfg.ShowUI)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromeBin)
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("VERIFY_NAV_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	valid := Config{
		BaseURL:         "http://localhost:3000",
		OutputDir:       "verification",
		NavTimeout:      time.Minute,
		IdleTimeout:     time.Second,
		SelectorTimeout: time.Second,
	}
	require.NoError(t, valid.Validate())

	noScheme := valid
	noScheme.BaseURL = "localhost:3000/"
	assert.ErrorContains(t, noScheme.Validate(), "invalid base URL")

	zero := valid
	zero.IdleTimeout = 0
	assert.ErrorContains(t, zero.Validate(), "network idle timeout must be positive")

	noDir := valid
	noDir.OutputDir = ""
	assert.ErrorContains(t, noDir.Validate(), "output dir is required")
}
