package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configEnvVars lists every variable LoadConfig reads.
var configEnvVars = []string{
	"APP_ENV", "LOG_LEVEL",
	"INFERENCE_API_URL", "WEATHER_API_URL", "SERVICE_TIMEOUT", "SERVICE_USER_AGENT",
	"BREAKER_MAX_FAILURES", "BREAKER_COOLDOWN",
	"DEFAULT_LOCATION", "STUB_PORT", "STUB_RATE_LIMIT", "STUB_RATE_BURST",
}

// clearConfigEnv unsets every config variable for the duration of the test so
// that values from the developer's shell cannot leak into assertions.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// TestLoadConfigDefaults verifies that an empty environment yields the
// documented defaults.
func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.Services.InferenceURL)
	assert.Equal(t, "https://agro-5hga.onrender.com", cfg.Services.WeatherURL)
	assert.Equal(t, 30*time.Second, cfg.Services.Timeout)
	assert.Equal(t, "AgroMind/1.0", cfg.Services.UserAgent)
	assert.Equal(t, uint32(5), cfg.Services.BreakerMaxFailures)
	assert.Equal(t, 30*time.Second, cfg.Services.BreakerCooldown)
	assert.Equal(t, "Dhaka", cfg.Weather.DefaultLocation)
	assert.Equal(t, "5000", cfg.Stub.Port)
	assert.Zero(t, cfg.Stub.RateLimit)
	assert.Equal(t, 10, cfg.Stub.RateBurst)
	assert.Equal(t, NewBuildInfo(), cfg.Build)
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "dev")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("INFERENCE_API_URL", "http://inference.internal:8080")
	t.Setenv("SERVICE_TIMEOUT", "5s")
	t.Setenv("BREAKER_MAX_FAILURES", "2")
	t.Setenv("DEFAULT_LOCATION", "Rajshahi")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://inference.internal:8080", cfg.Services.InferenceURL)
	assert.Equal(t, 5*time.Second, cfg.Services.Timeout)
	assert.Equal(t, uint32(2), cfg.Services.BreakerMaxFailures)
	assert.Equal(t, "Rajshahi", cfg.Weather.DefaultLocation)
}

// TestLoadConfigDotenvDoesNotOverrideEnv verifies the priority chain:
// OS environment beats the dotenv file, which beats struct defaults.
func TestLoadConfigDotenvDoesNotOverrideEnv(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "DEFAULT_LOCATION=Sylhet\nLOG_LEVEL=warn\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Sylhet", cfg.Weather.DefaultLocation, "dotenv value should fill an unset variable")
	assert.Equal(t, "error", cfg.LogLevel, "environment should win over dotenv")
}

func TestLoadConfigValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown environment", "APP_ENV", "production"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"inference url not a url", "INFERENCE_API_URL", "not a url"},
		{"zero breaker threshold", "BREAKER_MAX_FAILURES", "0"},
		{"non-numeric stub port", "STUB_PORT", "http"},
		{"negative stub rate", "STUB_RATE_LIMIT", "-1"},
		{"zero stub burst", "STUB_RATE_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
			require.Error(t, err)
			assert.Nil(t, cfg)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, ErrValidation, cfgErr.Type)
		})
	}
}

func TestLoadConfigParsingError(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SERVICE_TIMEOUT", "soon")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrParsing, cfgErr.Type)
	assert.NotNil(t, cfgErr.Unwrap())
}
