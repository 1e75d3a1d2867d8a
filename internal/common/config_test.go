package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8090, config.Server.Port)
	assert.Equal(t, "FIFO", config.Analytics.CostBasisMethod)
	assert.Equal(t, 0.02, config.Analytics.RiskFreeRate)
	assert.False(t, config.Analytics.CalendarResampling)
	assert.Equal(t, 10*time.Second, config.Advisory.GetTimeout())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8090, config.Server.Port)
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cryptofolio.toml")
	content := `
environment = "production"

[server]
host = "0.0.0.0"
port = 9000

[analytics]
cost_basis_method = "HIFO"
risk_free_rate = 0.03
calendar_resampling = true

[advisory]
timeout = "5s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, "HIFO", config.Analytics.CostBasisMethod)
	assert.Equal(t, 0.03, config.Analytics.RiskFreeRate)
	assert.True(t, config.Analytics.CalendarResampling)
	assert.Equal(t, 5*time.Second, config.Advisory.GetTimeout())

	// Unspecified sections keep their defaults.
	assert.Equal(t, "data/cryptofolio", config.Storage.Path)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CRYPTOFOLIO_PORT", "7070")
	t.Setenv("CRYPTOFOLIO_COST_BASIS_METHOD", "LIFO")
	t.Setenv("CRYPTOFOLIO_CALENDAR_RESAMPLING", "true")
	t.Setenv("CRYPTOFOLIO_API_KEY", "secret")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "LIFO", config.Analytics.CostBasisMethod)
	assert.True(t, config.Analytics.CalendarResampling)
	assert.Equal(t, "secret", config.Server.APIKey)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[[not toml"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGeminiConfig_GetTimeout(t *testing.T) {
	c := GeminiConfig{Timeout: "90s"}
	assert.Equal(t, 90*time.Second, c.GetTimeout())

	c.Timeout = "garbage"
	assert.Equal(t, 60*time.Second, c.GetTimeout())
}
