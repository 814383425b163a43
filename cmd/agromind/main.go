// Package main is the agromind command line client.
//
// It wires configuration, structured logging and one service client per
// controller, then dispatches to a subcommand. Each subcommand
// drives one or more controllers and renders their final state as text.
// The stub-server subcommand runs a local stand-in for both services.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"agromind/internal/config"
	"agromind/internal/external"
)

// errReported marks a failure that has already been shown to the user.
var errReported = errors.New("reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if errors.Is(err, errReported) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// app carries the dependencies of every subcommand. Each controller has its
// own client, and with it its own circuit breaker.
type app struct {
	ctx       context.Context
	cfg       *config.Config
	logger    *slog.Logger
	out       io.Writer
	detection external.ServiceClient
	soil      external.ServiceClient
	weather   external.ServiceClient
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) *app {
	return &app{
		ctx:       ctx,
		cfg:       cfg,
		logger:    logger,
		out:       out,
		detection: newServiceClient("detection", cfg.Services.InferenceURL, cfg, logger),
		soil:      newServiceClient("soil", cfg.Services.InferenceURL, cfg, logger),
		weather:   newServiceClient("weather", cfg.Services.WeatherURL, cfg, logger),
	}
}

// run parses args, loads configuration and runs the selected subcommand.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("agromind"),
		kong.Description("Leaf disease detection, crop recommendation and weather for farmers."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("building command line parser: %w", err)
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(cli.EnvFile...)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	level := cfg.LogLevel
	if cli.Debug {
		level = "debug"
	}
	logger := newLogger(level, stderr)
	logger.Debug("agromind starting",
		"environment", cfg.Environment,
		"version", cfg.Build.Version,
		"commit", cfg.Build.Commit,
		"command", kctx.Command(),
	)

	return kctx.Run(newApp(ctx, cfg, logger, stdout))
}

func newServiceClient(name, baseURL string, cfg *config.Config, logger *slog.Logger) *external.APIClient {
	return external.NewAPIClient(
		&http.Client{Timeout: cfg.Services.Timeout},
		external.APIClientConfig{
			Name:      name,
			BaseURL:   baseURL,
			UserAgent: cfg.Services.UserAgent,
			Breaker: external.BreakerSettings{
				MaxFailures: cfg.Services.BreakerMaxFailures,
				Cooldown:    cfg.Services.BreakerCooldown,
			},
			Logger: logger,
		},
	)
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: false,
	})
	return slog.New(handler)
}
