package main

import (
	"bytes"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"agromind/internal/stubserver"
	"agromind/internal/types"
)

// CLI is the command line grammar.
type CLI struct {
	EnvFile []string `name:"env-file" help:"Dotenv files to load (default .env)."`
	Debug   bool     `help:"Log at debug level."`

	Detect     DetectCmd     `cmd:"" help:"Detect leaf disease from a photo."`
	Recommend  RecommendCmd  `cmd:"" help:"Recommend a crop from soil and climate readings."`
	Weather    WeatherCmd    `cmd:"" help:"Show current weather, the next hours and the week ahead."`
	Dashboard  DashboardCmd  `cmd:"" help:"Run detection, recommendation and weather side by side."`
	StubServer StubServerCmd `cmd:"" name:"stub-server" help:"Serve a local stand-in for the inference and weather services."`
	Version    VersionCmd    `cmd:"" help:"Print build information."`
}

// SoilFlags are the seven raw readings. Values are passed through as text.
type SoilFlags struct {
	N           string `name:"n" help:"Nitrogen."`
	P           string `name:"p" help:"Phosphorus."`
	K           string `name:"k" help:"Potassium."`
	Temperature string `name:"temperature" help:"Temperature in Celsius."`
	Humidity    string `name:"humidity" help:"Relative humidity in percent."`
	PH          string `name:"ph" help:"Soil pH."`
	Rainfall    string `name:"rainfall" help:"Rainfall in mm."`
}

func (f SoilFlags) values() map[types.SoilField]string {
	return map[types.SoilField]string{
		types.SoilNitrogen:    f.N,
		types.SoilPhosphorus:  f.P,
		types.SoilPotassium:   f.K,
		types.SoilTemperature: f.Temperature,
		types.SoilHumidity:    f.Humidity,
		types.SoilPH:          f.PH,
		types.SoilRainfall:    f.Rainfall,
	}
}

// DetectCmd runs the detection controller once.
type DetectCmd struct {
	Image string `help:"Leaf photo to classify." type:"path"`
}

func (c *DetectCmd) Run(a *app) error {
	var buf bytes.Buffer
	err := runDetection(a, &buf, c.Image, a.logger)
	_, _ = a.out.Write(buf.Bytes())
	return err
}

// RecommendCmd runs the soil controller once.
type RecommendCmd struct {
	SoilFlags `embed:""`
}

func (c *RecommendCmd) Run(a *app) error {
	var buf bytes.Buffer
	err := runRecommendation(a, &buf, c.SoilFlags, a.logger)
	_, _ = a.out.Write(buf.Bytes())
	return err
}

// WeatherCmd opens the weather controller and optionally searches.
type WeatherCmd struct {
	Location string `help:"Place to search for after the default location loads."`
}

func (c *WeatherCmd) Run(a *app) error {
	var buf bytes.Buffer
	err := runWeather(a, &buf, c.Location, a.logger)
	_, _ = a.out.Write(buf.Bytes())
	return err
}

// DashboardCmd runs all three controllers concurrently and prints their
// results in a fixed order.
type DashboardCmd struct {
	Image    string `help:"Leaf photo to classify." type:"path"`
	Location string `help:"Place to search for after the default location loads."`
	SoilFlags `embed:""`
}

func (c *DashboardCmd) Run(a *app) error {
	var sections [3]bytes.Buffer
	var g errgroup.Group

	g.Go(func() error {
		return runDetection(a, &sections[0], c.Image, a.logger.With("controller", "detection"))
	})
	g.Go(func() error {
		return runRecommendation(a, &sections[1], c.SoilFlags, a.logger.With("controller", "soil"))
	})
	g.Go(func() error {
		return runWeather(a, &sections[2], c.Location, a.logger.With("controller", "weather"))
	})
	err := g.Wait()

	titles := [3]string{"Disease detection", "Crop recommendation", "Weather"}
	for i := range sections {
		fmt.Fprintf(a.out, "== %s ==\n", titles[i])
		_, _ = a.out.Write(sections[i].Bytes())
		if i < len(sections)-1 {
			fmt.Fprintln(a.out)
		}
	}
	return err
}

// StubServerCmd serves the stub service until interrupted.
type StubServerCmd struct {
	Port string `help:"Port to listen on (default STUB_PORT)."`
}

func (c *StubServerCmd) Run(a *app) error {
	srv, err := stubserver.NewServer(a.logger,
		stubserver.WithDefaultLocation(a.cfg.Weather.DefaultLocation),
		stubserver.WithRateLimit(a.cfg.Stub.RateLimit, a.cfg.Stub.RateBurst),
	)
	if err != nil {
		return fmt.Errorf("creating stub server: %w", err)
	}
	srv.MountRoutes()

	port := c.Port
	if port == "" {
		port = a.cfg.Stub.Port
	}
	return srv.ListenAndServe(a.ctx, ":"+port)
}

// VersionCmd prints the build metadata.
type VersionCmd struct{}

func (c *VersionCmd) Run(a *app) error {
	fmt.Fprintln(a.out, "agromind", a.cfg.Build)
	return nil
}

// observe logs every controller transition.
func observe[S interface{ Phase() types.Phase }](logger *slog.Logger) func(S) {
	return func(s S) {
		logger.Debug("controller transition", "phase", s.Phase(), "state", fmt.Sprintf("%T", s))
	}
}
