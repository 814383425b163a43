// loader.go implements the configuration loading lifecycle.
//
// The loading sequence is:
//  1. Load .env file via godotenv (non-fatal if absent).
//  2. Use envconfig to process struct tags and populate the Config struct.
//  3. Populate BuildInfo from linker-injected variables.
//  4. Validate the struct using go-playground/validator.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigError is a diagnostic error type returned by LoadConfig to aid debugging.
// It wraps a ConfigErrorType and an underlying error message.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LoadConfig loads and validates the configuration. Dotenv files are read
// from the given paths; with no paths, ".env" in the working directory is
// tried. Missing dotenv files are not an error, and dotenv values never
// override variables already present in the environment.
func LoadConfig(dotenvFiles ...string) (*Config, error) {
	// Step 1: Load .env file (non-fatal if absent).
	_ = godotenv.Load(dotenvFiles...)

	// Step 2: Process envconfig tags. The empty prefix means envconfig uses
	// the exact tag values (e.g., envconfig:"APP_ENV" reads APP_ENV directly).
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	// Step 3: Populate build metadata from linker-injected variables.
	cfg.Build = NewBuildInfo()

	// Step 4: Validate the populated struct.
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return &cfg, nil
}
