package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1", cfg.Weather.Geocoding.BaseURL)
	assert.Equal(t, "vi", cfg.Weather.Geocoding.Language)
	assert.Equal(t, "https://api.open-meteo.com/v1", cfg.Weather.Forecast.BaseURL)
	assert.Equal(t, 10, cfg.Weather.Timeout)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.yaml")
	content := `
server:
  port: 9090
weather:
  geocoding:
    language: en
  timeout: 3
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "en", cfg.Weather.Geocoding.Language)
	assert.Equal(t, 3, cfg.Weather.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "https://api.open-meteo.com/v1", cfg.Weather.Forecast.BaseURL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widget.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600))

	t.Setenv("WW_SERVER_PORT", "7070")
	t.Setenv("WW_WEATHER_FORECAST_BASE_URL", "http://localhost:1234/v1")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://localhost:1234/v1", cfg.Weather.Forecast.BaseURL)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WW_WEATHER_GEOCODING_LANGUAGE=en\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() { os.Unsetenv("WW_WEATHER_GEOCODING_LANGUAGE") })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Weather.Geocoding.Language)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSetGetConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Server.Port = 1234
	SetConfig(cfg)

	assert.Equal(t, 1234, GetConfig().Server.Port)
}
