// Package config defines the configuration for the AgroMind client.
// Configuration is loaded once at process start and is immutable thereafter.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File -> Struct Defaults (Lowest)
//
// Any invalid value causes LoadConfig to fail; callers exit on that error.
package config

import "time"

// Config is the top-level configuration struct.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Services ServicesConfig
	Weather  WeatherConfig
	Stub     StubConfig

	// Build Metadata (Injected via ldflags, not Env)
	Build BuildInfo
}

// ServicesConfig holds the remote service endpoints and outbound client tuning.
// Disease detection and crop recommendation are served by the inference
// service; weather snapshots come from a separate aggregation service.
type ServicesConfig struct {
	InferenceURL string        `envconfig:"INFERENCE_API_URL" default:"http://127.0.0.1:5000" validate:"required,url"`
	WeatherURL   string        `envconfig:"WEATHER_API_URL" default:"https://agro-5hga.onrender.com" validate:"required,url"`
	Timeout      time.Duration `envconfig:"SERVICE_TIMEOUT" default:"30s" validate:"gt=0"`
	UserAgent    string        `envconfig:"SERVICE_USER_AGENT" default:"AgroMind/1.0"`

	// Circuit breaker: trips after BreakerMaxFailures consecutive failures and
	// stays open for BreakerCooldown.
	BreakerMaxFailures uint32        `envconfig:"BREAKER_MAX_FAILURES" default:"5" validate:"min=1"`
	BreakerCooldown    time.Duration `envconfig:"BREAKER_COOLDOWN" default:"30s" validate:"gt=0"`
}

// WeatherConfig holds weather query defaults.
type WeatherConfig struct {
	DefaultLocation string `envconfig:"DEFAULT_LOCATION" default:"Dhaka" validate:"required"`
}

// StubConfig holds settings for the local stub service.
type StubConfig struct {
	Port string `envconfig:"STUB_PORT" default:"5000" validate:"numeric"`

	// RateLimit is requests per second across all routes; 0 disables throttling.
	RateLimit float64 `envconfig:"STUB_RATE_LIMIT" default:"0" validate:"gte=0"`
	RateBurst int     `envconfig:"STUB_RATE_BURST" default:"10" validate:"min=1"`
}

// BuildInfo holds build-time metadata injected via ldflags.
// These values are NOT populated from environment variables.
type BuildInfo struct {
	Version   string `ignored:"true"`
	Commit    string `ignored:"true"`
	BuildTime string `ignored:"true"`
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
